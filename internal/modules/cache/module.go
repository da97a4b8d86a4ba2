package cache

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	analyzersvc "upvotes_analyzer/internal/modules/analyzer/service"
	"upvotes_analyzer/internal/modules/cache/service"
	"upvotes_analyzer/internal/modules/config"
	"upvotes_analyzer/pkg/logger"
)

// NewCache: redis если задан redis.addr, иначе LRU на cache.size, иначе без кэша.
func NewCache(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (analyzersvc.Cache, error) {
	switch {
	case cfg.Redis.Addr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrapf(err, "ping redis %s", cfg.Redis.Addr)
		}
		c := service.NewRedis(client, cfg.Redis.TTL)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return c.Close() },
		})
		logger.Info("cache: redis %s ttl=%s", cfg.Redis.Addr, cfg.Redis.TTL)
		return c, nil

	case cfg.Cache.Size > 0:
		logger.Info("cache: local lru size=%d", cfg.Cache.Size)
		c, err := service.NewLRU(cfg.Cache.Size)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return analyzersvc.NewNoopCache(), nil
	}
}

func Module() fx.Option {
	return fx.Module("cache",
		fx.Provide(NewCache),
	)
}
