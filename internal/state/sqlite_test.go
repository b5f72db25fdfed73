package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlequiv/internal/testutil"
	"github.com/leapstack-labs/sqlequiv/pkg/equiv"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(filepath.Join(t.TempDir(), "history.db")))
	require.NoError(t, store.Migrate())

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// migrating twice is a no-op
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Close())
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	assert.ErrorIs(t, store.Migrate(), ErrNotOpen)
	_, err := store.CreateRun(ctx, RunInput{})
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.GetRun(ctx, "x")
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.ListRuns(ctx, 10)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.CompleteRun(ctx, "x", "Equivalent", ""), ErrNotOpen)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run, err := store.CreateRun(ctx, RunInput{
		SourcePath:    "a.sql",
		TargetPath:    "b.sql",
		SourceDialect: "oracle",
		TargetDialect: "trino",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, VerdictRunning, run.Verdict)

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, VerdictRunning, got.Verdict)
	assert.Nil(t, got.CompletedAt)
	assert.WithinDuration(t, run.StartedAt, got.StartedAt, 0)

	records := []StatementRecord{
		{RunID: run.ID, Index: 0, SourceText: "SELECT a FROM t", TargetText: "SELECT a FROM t", Equal: true},
		{RunID: run.ID, Index: 1, SourceText: "SELECT b FROM t", TargetText: "SELECT x FROM t", Explanation: "@@ -1 +1 @@"},
	}
	for _, rec := range records {
		require.NoError(t, store.RecordStatement(ctx, rec))
	}

	require.NoError(t, store.CompleteRun(ctx, run.ID, "Not Equivalent", "SQL statements at index 2 do not match after normalization."))

	got, err = store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "Not Equivalent", got.Verdict)
	assert.Equal(t, 2, got.StatementCount)
	assert.Equal(t, 1, got.MismatchCount)
	require.NotNil(t, got.CompletedAt)

	stmts, err := store.GetStatements(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, records, stmts)

	// duplicate index
	assert.Error(t, store.RecordStatement(ctx, records[0]))
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first.sql", "second.sql", "third.sql"} {
		run, err := store.CreateRun(ctx, RunInput{SourcePath: name, TargetPath: name})
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, store.CompleteRun(ctx, "missing", "Equivalent", ""), ErrRunNotFound)

	stmts, err := store.GetStatements(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

func TestRecordResult(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	c, err := equiv.New(equiv.DefaultOptions(), testutil.NewTestLogger(t))
	require.NoError(t, err)
	res := c.Compare(ctx, "SELECT NVL(a, 0) FROM t; SELECT b FROM t", "SELECT coalesce(a, 0) FROM t; SELECT c FROM t")
	require.Equal(t, equiv.NotEquivalent, res.Verdict)

	run, err := RecordResult(ctx, store, RunInput{SourcePath: "o.sql", TargetPath: "t.sql", SourceDialect: "oracle", TargetDialect: "trino"}, res)
	require.NoError(t, err)
	assert.Equal(t, "Not Equivalent", run.Verdict)
	assert.Equal(t, res.Message, run.Message)
	assert.Equal(t, 2, run.StatementCount)
	assert.Equal(t, 1, run.MismatchCount)

	stmts, err := store.GetStatements(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.False(t, stmts[1].Equal)
	assert.NotEmpty(t, stmts[1].Explanation)
}
