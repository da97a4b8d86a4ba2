package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	analyzersvc "upvotes_analyzer/internal/modules/analyzer/service"
	"upvotes_analyzer/internal/modules/config"
	"upvotes_analyzer/internal/modules/postgres/service/pg"
	"upvotes_analyzer/pkg/db"
	"upvotes_analyzer/pkg/logger"
)

// Module отдаёт хранилище прогонов: postgres при заданном db_dsn, иначе память.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (analyzersvc.RunStore, error) {
				if cfg.DB == "" {
					logger.Info("postgres: db_dsn is empty, runs are kept in memory")
					return pg.NewMemoryRuns(), nil
				}

				pool, err := db.NewPool(ctx, db.PoolConfig{
					DSN:      cfg.DB,
					MaxConns: cfg.DBMaxConns,
				})
				if err != nil {
					return nil, fmt.Errorf("postgres: %w", err)
				}

				txManager := db.NewPgTxManager(pool)
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						txManager.Close()
						return nil
					},
				})

				runs := pg.NewRuns(txManager)
				if err := runs.Migrate(ctx); err != nil {
					return nil, err
				}
				return runs, nil
			},
		),
	)
}
