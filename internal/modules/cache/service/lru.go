package service

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU — локальный кэш метрик на процесс.
type LRU struct {
	cache *lru.Cache[string, []int64]
}

func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[string, []int64](size)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: c}, nil
}

func (l *LRU) Get(_ context.Context, key string) ([]int64, bool) {
	v, ok := l.cache.Get(key)
	if !ok {
		return nil, false
	}
	return slices.Clone(v), true
}

func (l *LRU) Set(_ context.Context, key string, metrics []int64) {
	l.cache.Add(key, slices.Clone(metrics))
}

func (l *LRU) Len() int { return l.cache.Len() }
