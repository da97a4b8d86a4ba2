package pg

import (
	"context"
	"slices"
	"sync"

	"upvotes_analyzer/internal/models"
)

// MemoryRuns — то же хранилище, но в памяти процесса (без db_dsn).
type MemoryRuns struct {
	mu   sync.RWMutex
	data map[string]*models.Run
}

func NewMemoryRuns() *MemoryRuns {
	return &MemoryRuns{data: make(map[string]*models.Run)}
}

func (m *MemoryRuns) Save(_ context.Context, run *models.Run) error {
	cp := *run
	cp.Values = slices.Clone(run.Values)
	cp.Metrics = slices.Clone(run.Metrics)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[run.ID] = &cp
	return nil
}

func (m *MemoryRuns) Get(_ context.Context, id string) (*models.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.data[id]
	if !ok {
		return nil, models.ErrRunNotFound
	}
	cp := *run
	return &cp, nil
}
