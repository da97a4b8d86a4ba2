package tracing

import (
	"context"

	"go.uber.org/fx"

	"upvotes_analyzer/internal/modules/config"
	"upvotes_analyzer/pkg/logger"
	"upvotes_analyzer/pkg/tracing"
)

// Module включает Jaeger, если tracing.enabled. Иначе spans уходят в noop.
func Module() fx.Option {
	return fx.Module("tracing",
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if !cfg.Tracing.Enabled {
				return nil
			}
			_, closer, err := tracing.InitTracer(tracing.Config{
				Host:        cfg.Tracing.Host,
				Port:        cfg.Tracing.Port,
				SampleRatio: cfg.Tracing.SampleRatio,
			})
			if err != nil {
				return err
			}
			logger.Info("tracing: jaeger agent %s:%d", cfg.Tracing.Host, cfg.Tracing.Port)
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closer()
					return nil
				},
			})
			return nil
		}),
	)
}
