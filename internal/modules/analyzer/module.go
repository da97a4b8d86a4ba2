package analyzer

import (
	"go.uber.org/fx"

	"upvotes_analyzer/internal/modules/analyzer/service"
)

func Module() fx.Option {
	return fx.Module("analyzer",
		fx.Provide(
			service.NewEngine,  // service.Engine по analyzer.mode
			service.NewService, // *service.Service (Engine, RunStore, Cache, Notifier, RunObserver)
		),
	)
}
