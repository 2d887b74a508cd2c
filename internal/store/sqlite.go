package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// connPragmas are applied by the driver to every new connection.
var connPragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// SQLiteStore implements Gateway using a local SQLite database.
type SQLiteStore struct {
	querier
	db     *sqlx.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations. Every
// failure is wrapped in ErrStorageUnavailable.
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %w", ErrStorageUnavailable, err)
		}
	}

	db, err := sqlx.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite db: %w", ErrStorageUnavailable, err)
	}

	// One connection: single local writer, and ":memory:" stays one database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connecting to %s: %w", ErrStorageUnavailable, dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %w", ErrStorageUnavailable, err)
	}

	s := &SQLiteStore{
		querier: querier{ext: db},
		db:      db,
		path:    dbPath,
		logger:  logger,
	}
	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	logger.Debug("catalog database ready", "path", dbPath)
	return s, nil
}

// dsn appends the connection pragmas understood by modernc.org/sqlite.
func dsn(path string) string {
	params := make([]string, len(connPragmas))
	for i, p := range connPragmas {
		params[i] = "_pragma=" + p
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database location the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// EnsureSchema checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.GetContext(ctx,
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.GetContext(ctx, &currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		s.logger.Info("applied schema migration", "version", m.version)
	}

	return nil
}

// InTx runs fn in a transaction. The transaction is rolled back when fn
// returns an error.
func (s *SQLiteStore) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return statementError("beginning transaction", err)
	}
	defer tx.Rollback()

	if err := fn(querier{ext: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return statementError("committing transaction", err)
	}
	return nil
}

// querier adapts a sqlx handle (DB or Tx) to Querier.
type querier struct {
	ext sqlx.ExtContext
}

func (q querier) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := q.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, statementError("exec", err)
	}
	var r Result
	r.RowsAffected, _ = res.RowsAffected()
	r.LastInsertID, _ = res.LastInsertId()
	return r, nil
}

func (q querier) Select(ctx context.Context, dest any, query string, args ...any) error {
	if err := sqlx.SelectContext(ctx, q.ext, dest, query, args...); err != nil {
		return statementError("select", err)
	}
	return nil
}

func (q querier) Get(ctx context.Context, dest any, query string, args ...any) error {
	if err := sqlx.GetContext(ctx, q.ext, dest, query, args...); err != nil {
		return statementError("get", err)
	}
	return nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
