package pg

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upvotes_analyzer/internal/models"
	"upvotes_analyzer/pkg/db"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx реализует только Exec и QueryRow, остального pgx.Tx код не трогает.
type fakeTx struct {
	pgx.Tx
	calls *[]execCall
	row   fakeRow
}

func (t fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { return t.row }

func (t fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	*t.calls = append(*t.calls, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *int64:
			*p = r.values[i].(int64)
		case *bool:
			*p = r.values[i].(bool)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

type fakeTxManager struct {
	calls    []execCall
	row      fakeRow
	readOnly int
}

func (m *fakeTxManager) RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, fakeTx{calls: &m.calls, row: m.row})
}

func (m *fakeTxManager) RunReadOnly(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error {
	m.readOnly++
	return fn(ctx, fakeTx{calls: &m.calls, row: m.row})
}

// Conn: пулу хватает того же набора методов, что и у транзакции.
func (m *fakeTxManager) Conn() db.Querier { return fakeTx{calls: &m.calls, row: m.row} }

func TestRuns_Save(t *testing.T) {
	m := &fakeTxManager{}
	runs := NewRuns(m)

	created := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	err := runs.Save(context.Background(), &models.Run{
		ID:        "run-1",
		N:         5,
		K:         3,
		Mode:      "sliding",
		Values:    []int64{1, 2, 3, 1, 1},
		Metrics:   []int64{3, 0, -2},
		Duration:  1500 * time.Nanosecond,
		CreatedAt: created,
	})
	require.NoError(t, err)
	require.Len(t, m.calls, 1)

	args := m.calls[0].args
	assert.Equal(t, "run-1", args[0])
	assert.JSONEq(t, `[1,2,3,1,1]`, string(args[4].([]byte)))
	assert.JSONEq(t, `[3,0,-2]`, string(args[5].([]byte)))
	assert.Equal(t, int64(1500), args[7])
	assert.Equal(t, created, args[8])
}

func TestRuns_Get(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	m := &fakeTxManager{row: fakeRow{values: []any{
		"run-1", 5, 3, "linear", []byte(`[1,2,3,1,1]`), []byte(`[3,0,-2]`), true, int64(2000), created,
	}}}

	run, err := NewRuns(m).Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, &models.Run{
		ID:        "run-1",
		N:         5,
		K:         3,
		Mode:      "linear",
		Values:    []int64{1, 2, 3, 1, 1},
		Metrics:   []int64{3, 0, -2},
		Cached:    true,
		Duration:  2 * time.Microsecond,
		CreatedAt: created,
	}, run)
	assert.Equal(t, 1, m.readOnly)
}

func TestRuns_Get_NotFound(t *testing.T) {
	m := &fakeTxManager{row: fakeRow{err: pgx.ErrNoRows}}

	_, err := NewRuns(m).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrRunNotFound)
}

func TestRuns_Migrate(t *testing.T) {
	m := &fakeTxManager{}
	require.NoError(t, NewRuns(m).Migrate(context.Background()))
	require.Len(t, m.calls, 1)
	assert.Contains(t, m.calls[0].sql, "CREATE TABLE IF NOT EXISTS analysis_runs")
}
