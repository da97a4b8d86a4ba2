package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TxManager — транзакции поверх пула. fn получает ctx транзакции.
type TxManager interface {
	// RunMaster — read committed, для записи.
	RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error
	// RunReadOnly — read only, для выборок.
	RunReadOnly(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) error
	// Conn — запросы без транзакции (DDL, одиночные чтения).
	Conn() Querier
}

// Querier — общее у *pgxpool.Pool и pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier   = pgx.Tx(nil)
	_ TxManager = (*PgTxManager)(nil)
)
