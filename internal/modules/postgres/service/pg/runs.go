package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"upvotes_analyzer/internal/models"
	"upvotes_analyzer/pkg/db"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id          TEXT PRIMARY KEY,
	n           INTEGER NOT NULL,
	k           INTEGER NOT NULL,
	mode        TEXT NOT NULL,
	input       JSONB NOT NULL,
	metrics     JSONB NOT NULL,
	cached      BOOLEAN NOT NULL DEFAULT FALSE,
	duration_ns BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertRun = `
INSERT INTO analysis_runs (id, n, k, mode, input, metrics, cached, duration_ns, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const selectRun = `
SELECT id, n, k, mode, input, metrics, cached, duration_ns, created_at
FROM analysis_runs
WHERE id = $1`

// Runs implement db store
type Runs struct {
	db db.TxManager
}

// NewRuns instance
func NewRuns(tx db.TxManager) *Runs {
	return &Runs{db: tx}
}

// Migrate создаёт таблицу, если её нет.
func (r *Runs) Migrate(ctx context.Context) error {
	if _, err := r.db.Conn().Exec(ctx, schema); err != nil {
		return fmt.Errorf("pg.Runs.Migrate: %w", err)
	}
	return nil
}

// Save in db
func (r *Runs) Save(ctx context.Context, run *models.Run) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Runs.Save: %w", err)
		}
	}()

	input, err := sonic.Marshal(run.Values)
	if err != nil {
		return err
	}
	metrics, err := sonic.Marshal(run.Metrics)
	if err != nil {
		return err
	}

	return r.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertRun,
			run.ID, run.N, run.K, run.Mode, input, metrics, run.Cached, run.Duration.Nanoseconds(), run.CreatedAt)
		return err
	})
}

// Get from db
func (r *Runs) Get(ctx context.Context, id string) (run *models.Run, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.Runs.Get: %w", err)
		}
	}()

	var (
		out             models.Run
		input, metrics  []byte
		durationNanosec int64
	)
	err = r.db.RunReadOnly(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctxTx, selectRun, id).Scan(
			&out.ID, &out.N, &out.K, &out.Mode, &input, &metrics, &out.Cached, &durationNanosec, &out.CreatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	if err = sonic.Unmarshal(input, &out.Values); err != nil {
		return nil, err
	}
	if err = sonic.Unmarshal(metrics, &out.Metrics); err != nil {
		return nil, err
	}
	out.Duration = time.Duration(durationNanosec)
	return &out, nil
}
