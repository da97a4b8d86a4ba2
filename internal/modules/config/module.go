package config

import (
	"go.uber.org/fx"

	"upvotes_analyzer/pkg/logger"
	"upvotes_analyzer/pkg/tracing"
)

// Module регистрирует конфиг как fx-провайдер и сразу поднимает логгер.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
		),
		fx.Invoke(func(cfg *Config) error {
			logger.SetServiceName(cfg.Service.Name)
			tracing.SetServiceName(cfg.Service.Name)
			return logger.Init(cfg.Log.Level)
		}),
	)
}
