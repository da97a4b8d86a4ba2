package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"upvotes_analyzer/pkg/logger"
)

// Redis — общий кэш для нескольких инстансов.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]int64, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logger.Error("cache: redis get %s: %v", key, err)
		return nil, false
	}
	var metrics []int64
	if err := sonic.Unmarshal(data, &metrics); err != nil {
		logger.Error("cache: redis decode %s: %v", key, err)
		return nil, false
	}
	return metrics, true
}

func (r *Redis) Set(ctx context.Context, key string, metrics []int64) {
	data, err := sonic.Marshal(metrics)
	if err != nil {
		logger.Error("cache: redis encode %s: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		logger.Error("cache: redis set %s: %v", key, err)
	}
}

func (r *Redis) Close() error { return r.client.Close() }
