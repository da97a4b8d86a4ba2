package service

import (
	"context"

	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/internal/models"
)

// Engine — то, что дергает Service. Реализуется *analyzer.Analyzer.
type Engine interface {
	Compute(ctx context.Context, n, k int, values []int64) ([]int64, error)
	Breakdown(ctx context.Context, n, k int, values []int64) ([]models.WindowMetric, error)
	Mode() analyzer.Mode
}

var _ Engine = (*analyzer.Analyzer)(nil)
