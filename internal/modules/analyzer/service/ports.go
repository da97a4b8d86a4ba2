package service

import (
	"context"
	"time"

	"upvotes_analyzer/internal/models"
)

// RunStore — хранилище прогонов (postgres или память).
type RunStore interface {
	Save(ctx context.Context, run *models.Run) error
	Get(ctx context.Context, id string) (*models.Run, error)
}

// Cache — метрики по ключу входных данных. Ошибки кэша не валят расчёт.
type Cache interface {
	Get(ctx context.Context, key string) ([]int64, bool)
	Set(ctx context.Context, key string, metrics []int64)
}

// RunObserver — кому интересен факт прогона (health).
type RunObserver interface {
	TouchRun(t time.Time)
}

type noopCache struct{}

func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string) ([]int64, bool) { return nil, false }
func (noopCache) Set(context.Context, string, []int64)        {}
