package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"

	analyzersvc "upvotes_analyzer/internal/modules/analyzer/service"
	"upvotes_analyzer/internal/modules/api/service"
	"upvotes_analyzer/internal/modules/config"
	healthsvc "upvotes_analyzer/internal/modules/health/service"
	"upvotes_analyzer/pkg/logger"
)

func NewServer(cfg *config.Config, h *service.Handler) *http.Server {
	mux := http.NewServeMux()
	h.Register(mux)
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.PublicPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func RunHTTP(lc fx.Lifecycle, srv *http.Server, state *healthsvc.State) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("api: listening on %s", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("api: serve: %v", err)
				}
			}()
			state.SetReady(true)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			state.SetReady(false)
			return srv.Shutdown(ctx)
		},
	})
}

// Module поднимает публичный HTTP/WebSocket API.
func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(
			func(s *analyzersvc.Service) service.Analyzer { return s },
			service.NewHandler,
			NewServer,
		),
		fx.Invoke(RunHTTP),
	)
}
