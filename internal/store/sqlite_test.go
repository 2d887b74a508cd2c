package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/problem-catalog/internal/store"
	"github.com/nhle/problem-catalog/tests/testutil"
)

func TestNewSQLiteStore_CreatesSchema(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, table := range []string{"tag", "problem", "problem_tag", "schema_version"} {
		var n int
		err := s.Get(ctx, &n,
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "table %s", table)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	var rows int
	require.NoError(t, s.Get(ctx, &rows, "SELECT COUNT(*) FROM schema_version"))
	assert.Equal(t, 2, rows, "each migration is recorded exactly once")
}

func TestNewSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	first, err := store.NewSQLiteStore(path, nil)
	require.NoError(t, err)
	_, err = store.NewTagStore(first).AddTag(ctx, "graphs", true)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := store.NewSQLiteStore(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	names, err := store.NewTagStore(second).ListAllTagNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"graphs"}, names)
}

func TestNewSQLiteStore_Unavailable(t *testing.T) {
	// A regular file where a directory is expected cannot hold the database.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := store.NewSQLiteStore(filepath.Join(blocker, "catalog.db"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestNewSQLiteStore_Memory(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	id, err := store.NewTagStore(s).AddTag(context.Background(), "dp", false)
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestExec_StatementFailure(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Exec(context.Background(), "INSERT INTO no_such_table VALUES (1)")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStatementFailure)
}

func TestGet_NoRowsIsNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	var id int64
	err := s.Get(context.Background(), &id, "SELECT id FROM tag WHERE name = ?", "missing")
	assert.True(t, store.IsNotFound(err))
}

func TestInTx_RollsBackOnError(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(q store.Querier) error {
		if _, err := q.Exec(ctx, "INSERT INTO tag (name, removable) VALUES ('tmp', 1)"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var n int
	require.NoError(t, s.Get(ctx, &n, "SELECT COUNT(*) FROM tag"))
	assert.Zero(t, n)
}
