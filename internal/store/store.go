package store

import "context"

// Result reports the effect of an Exec.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Querier executes parameterized statements. It is satisfied by the
// store itself and by the transaction handle passed to InTx.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	// Select scans all rows into dest, a pointer to a slice.
	Select(ctx context.Context, dest any, query string, args ...any) error
	// Get scans a single row into dest. No rows yields ErrNotFound.
	Get(ctx context.Context, dest any, query string, args ...any) error
}

// Gateway is the persistence handle injected into every catalog.
type Gateway interface {
	Querier

	// EnsureSchema creates or migrates the schema. It is idempotent and
	// cheap once the schema is current.
	EnsureSchema(ctx context.Context) error

	// InTx runs fn inside a transaction, committing when fn returns nil.
	InTx(ctx context.Context, fn func(q Querier) error) error
}
