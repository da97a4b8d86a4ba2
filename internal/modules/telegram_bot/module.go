package telegram

import (
	"context"

	"go.uber.org/fx"

	analyzersvc "upvotes_analyzer/internal/modules/analyzer/service"
	"upvotes_analyzer/internal/modules/config"
	"upvotes_analyzer/internal/modules/telegram_bot/service"
	"upvotes_analyzer/internal/notify"
	"upvotes_analyzer/pkg/logger"
)

// NewNotifier: если токена нет — используем stdout.
func NewNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err == nil {
			return tg
		}
		logger.Error("telegram: %v, falling back to stdout", err)
	}
	return notify.NewStdout()
}

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			NewNotifier, // notify.Notifier
			func(s *analyzersvc.Service) service.Analyzer { return s },
			service.NewCommands,
		),
		// Запуск long-polling через Lifecycle, только если это реально Telegram
		fx.Invoke(
			func(lc fx.Lifecycle, n notify.Notifier, c *service.Commands) {
				tg, ok := n.(*notify.Telegram)
				if !ok {
					return
				}
				tg.Handle("start", c.Help)
				tg.Handle("help", c.Help)
				tg.Handle("analyze", c.Analyze)
				tg.Handle("breakdown", c.Breakdown)
				tg.Handle("run", c.Run)

				runCtx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return tg.Start(runCtx)
					},
					OnStop: func(ctx context.Context) error {
						cancel()
						tg.Stop()
						return nil
					},
				})
			},
		),
	)
}
