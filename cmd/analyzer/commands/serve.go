package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	analyzermod "upvotes_analyzer/internal/modules/analyzer"
	"upvotes_analyzer/internal/modules/api"
	"upvotes_analyzer/internal/modules/cache"
	"upvotes_analyzer/internal/modules/config"
	"upvotes_analyzer/internal/modules/health"
	"upvotes_analyzer/internal/modules/postgres"
	telegram "upvotes_analyzer/internal/modules/telegram_bot"
	"upvotes_analyzer/internal/modules/tracing"
	"upvotes_analyzer/pkg/logger"
)

func NewServeCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP/WebSocket API, admin endpoints and the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				if err := os.Setenv("CONFIG_FILE", configFile); err != nil {
					return err
				}
			}
			app := NewApp()
			startCtx, cancel := context.WithTimeout(cmd.Context(), app.StartTimeout())
			defer cancel()
			if err := app.Start(startCtx); err != nil {
				return err
			}

			sig := <-app.Done()
			logger.Info("serve: %s, shutting down", sig)

			stopCtx, stop := context.WithTimeout(context.Background(), app.StopTimeout())
			defer stop()
			return app.Stop(stopCtx)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file name under configs/ (overrides CONFIG_FILE)")
	return cmd
}

// NewApp собирает все fx-модули сервиса.
func NewApp() *fx.App {
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.InfoLogger}
		}),
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		tracing.Module(),
		postgres.Module(),
		cache.Module(),
		health.Module(),
		telegram.Module(),
		analyzermod.Module(),
		api.Module(),
	)
}
