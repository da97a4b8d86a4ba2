package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"upvotes_analyzer/internal/models"
)

// Mode — способ подсчёта подотрезков. Все режимы дают одинаковый результат.
type Mode string

const (
	ModeSliding    Mode = "sliding"    // O(N) на всю последовательность
	ModeLinear     Mode = "linear"     // O(K) на окно
	ModeExhaustive Mode = "exhaustive" // O(K^2) на окно, эталонный перебор
)

// окна между проверками ctx в последовательном проходе
const ctxCheckEvery = 1024

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSliding, nil
	case ModeSliding, ModeLinear, ModeExhaustive:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want sliding|linear|exhaustive)", s)
	}
}

type Options struct {
	Mode Mode
	// Workers > 1 распараллеливает linear/exhaustive по окнам.
	Workers int
}

// Analyzer считает для каждого окна длины K разницу
// неубывающих и невозрастающих подотрезков.
type Analyzer struct {
	opts Options
}

func New(opts Options) *Analyzer {
	if opts.Mode == "" {
		opts.Mode = ModeSliding
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Analyzer{opts: opts}
}

func (a *Analyzer) Mode() Mode { return a.opts.Mode }

// ComputeWindowMetrics — расчёт с настройками по умолчанию.
func ComputeWindowMetrics(n, k int, values []int64) ([]int64, error) {
	return New(Options{}).Compute(context.Background(), n, k, values)
}

// Compute возвращает N-K+1 метрик в порядке окон.
func (a *Analyzer) Compute(ctx context.Context, n, k int, values []int64) ([]int64, error) {
	nd, ni, err := a.counts(ctx, n, k, values)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(nd))
	for i := range nd {
		out[i] = nd[i] - ni[i]
	}
	if err := checkLength(len(out), n-k+1); err != nil {
		return nil, err
	}
	return out, nil
}

// Breakdown — то же, что Compute, но с обоими счётчиками и границами окна.
func (a *Analyzer) Breakdown(ctx context.Context, n, k int, values []int64) ([]models.WindowMetric, error) {
	nd, ni, err := a.counts(ctx, n, k, values)
	if err != nil {
		return nil, err
	}
	out := make([]models.WindowMetric, len(nd))
	for i := range nd {
		out[i] = models.WindowMetric{
			Index:         i,
			Start:         i,
			End:           i + k,
			NonDecreasing: nd[i],
			NonIncreasing: ni[i],
			Delta:         nd[i] - ni[i],
		}
	}
	if err := checkLength(len(out), n-k+1); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Analyzer) counts(ctx context.Context, n, k int, values []int64) (nd, ni []int64, err error) {
	if err = Validate(n, k, values); err != nil {
		return nil, nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "analyzer")
	}

	switch a.opts.Mode {
	case ModeSliding:
		return slidingTotals(values, k, NonDecreasing), slidingTotals(values, k, NonIncreasing), nil
	case ModeLinear:
		return a.perWindow(ctx, values, k, CountRuns)
	case ModeExhaustive:
		return a.perWindow(ctx, values, k, CountRunsExhaustive)
	default:
		return nil, nil, fmt.Errorf("analyzer: unsupported mode %q", a.opts.Mode)
	}
}

func (a *Analyzer) perWindow(ctx context.Context, values []int64, k int, count Counter) ([]int64, []int64, error) {
	windows, err := Windows(len(values), k)
	if err != nil {
		return nil, nil, err
	}
	nd := make([]int64, len(windows))
	ni := make([]int64, len(windows))

	fill := func(ctx context.Context, ws []Window) error {
		for i, w := range ws {
			if i%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			seg := w.Of(values)
			nd[w.Index] = count(seg, NonDecreasing)
			ni[w.Index] = count(seg, NonIncreasing)
		}
		return nil
	}

	workers := min(a.opts.Workers, len(windows))
	if workers <= 1 {
		if err := fill(ctx, windows); err != nil {
			return nil, nil, errors.Wrap(err, "count windows")
		}
		return nd, ni, nil
	}

	// каждая горутина пишет только в свои индексы, порядок сохраняется
	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(windows) + workers - 1) / workers
	for from := 0; from < len(windows); from += chunk {
		part := windows[from:min(from+chunk, len(windows))]
		g.Go(func() error { return fill(gctx, part) })
	}
	if err := g.Wait(); err != nil {
		return nil, nil, errors.Wrap(err, "count windows")
	}
	return nd, ni, nil
}
