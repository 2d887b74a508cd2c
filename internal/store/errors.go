package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Sentinel errors returned by the store. Callers match them with errors.Is.
var (
	// ErrStorageUnavailable means the database could not be opened or
	// migrated. It is fatal at startup.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStatementFailure wraps a failed statement: constraint violation,
	// malformed SQL, cancelled context.
	ErrStatementFailure = errors.New("statement failed")

	// ErrNotFound is returned by single-row reads that match nothing.
	ErrNotFound = errors.New("not found")

	// ErrInvalid is returned for input rejected before reaching SQL.
	ErrInvalid = errors.New("invalid input")
)

// statementError classifies a driver error for op.
func statementError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStatementFailure, err)
}

// IsNotFound reports whether err carries ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
