package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/internal/models"
	"upvotes_analyzer/internal/notify"
	"upvotes_analyzer/pkg/logger"
	"upvotes_analyzer/pkg/tracing"
)

// сколько метрик показываем в уведомлении
const notifyPreview = 20

// Service: валидация → кэш → расчёт → сохранение → уведомление.
type Service struct {
	engine   Engine
	runs     RunStore
	cache    Cache
	notifier notify.Notifier
	observer RunObserver

	now func() time.Time
}

func NewService(engine Engine, runs RunStore, cache Cache, n notify.Notifier, obs RunObserver) *Service {
	return &Service{
		engine:   engine,
		runs:     runs,
		cache:    cache,
		notifier: n,
		observer: obs,
		now:      time.Now,
	}
}

func (s *Service) Mode() analyzer.Mode { return s.engine.Mode() }

// Analyze считает метрики по всем окнам и сохраняет прогон.
func (s *Service) Analyze(ctx context.Context, req models.AnalyzeRequest) (run *models.Run, err error) {
	span, ctx := tracing.StartSpan(ctx, "analyzer.Analyze")
	defer func() { tracing.Finish(span, err) }()
	span.SetTag("n", req.N)
	span.SetTag("k", req.K)
	span.SetTag("mode", string(s.engine.Mode()))

	if err = analyzer.Validate(req.N, req.K, req.Values); err != nil {
		runsTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	started := s.now()
	key := CacheKey(req)
	metrics, cached := s.cache.Get(ctx, key)
	if cached {
		cacheHitsTotal.Inc()
	} else {
		metrics, err = s.engine.Compute(ctx, req.N, req.K, req.Values)
		if err != nil {
			s.countFailure(err)
			return nil, err
		}
		s.cache.Set(ctx, key, metrics)
	}
	took := s.now().Sub(started)

	run = &models.Run{
		ID:        uuid.NewString(),
		N:         req.N,
		K:         req.K,
		Mode:      string(s.engine.Mode()),
		Values:    req.Values,
		Metrics:   metrics,
		Cached:    cached,
		Duration:  took,
		CreatedAt: started.UTC(),
	}
	if err = s.runs.Save(ctx, run); err != nil {
		runsTotal.WithLabelValues(resultFailed).Inc()
		return nil, errors.Wrap(err, "save run")
	}

	runsTotal.WithLabelValues(resultOK).Inc()
	windowsTotal.Add(float64(len(metrics)))
	runDuration.Observe(took.Seconds())
	if s.observer != nil {
		s.observer.TouchRun(run.CreatedAt)
	}

	logger.Info("run %s: n=%d k=%d mode=%s cached=%t took=%s", run.ID, run.N, run.K, run.Mode, cached, took)
	s.notifier.Sendf("📈 Прогон %s\nN=%d K=%d\nМетрики: %s", run.ID, run.N, run.K, Preview(metrics, notifyPreview))
	return run, nil
}

// Breakdown — разбивка по окнам, без сохранения.
func (s *Service) Breakdown(ctx context.Context, req models.AnalyzeRequest) (out []models.WindowMetric, err error) {
	span, ctx := tracing.StartSpan(ctx, "analyzer.Breakdown")
	defer func() { tracing.Finish(span, err) }()
	span.SetTag("n", req.N)
	span.SetTag("k", req.K)

	out, err = s.engine.Breakdown(ctx, req.N, req.K, req.Values)
	if err != nil {
		s.countFailure(err)
		return nil, err
	}
	for _, w := range out {
		logger.Debug("window %d [%d,%d): non-decreasing=%d non-increasing=%d delta=%d",
			w.Index, w.Start, w.End, w.NonDecreasing, w.NonIncreasing, w.Delta)
	}
	return out, nil
}

func (s *Service) Run(ctx context.Context, id string) (*models.Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.Wrapf(models.ErrRunNotFound, "bad run id %q", id)
	}
	return s.runs.Get(ctx, id)
}

func (s *Service) countFailure(err error) {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		runsTotal.WithLabelValues(resultInvalid).Inc()
	case errors.Is(err, analyzer.ErrInvariantViolation):
		runsTotal.WithLabelValues(resultInvariant).Inc()
		logger.Error("analyzer: %v", err)
	default:
		runsTotal.WithLabelValues(resultFailed).Inc()
	}
}

// Preview — первые limit метрик, остальное свёрнуто.
func Preview(metrics []int64, limit int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, m := range metrics {
		if i == limit {
			fmt.Fprintf(&b, " … +%d", len(metrics)-limit)
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", m)
	}
	b.WriteByte(']')
	return b.String()
}
