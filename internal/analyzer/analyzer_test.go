package analyzer

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upvotes_analyzer/internal/models"
)

func allAnalyzers() map[string]*Analyzer {
	return map[string]*Analyzer{
		"sliding":              New(Options{Mode: ModeSliding}),
		"linear":               New(Options{Mode: ModeLinear}),
		"exhaustive":           New(Options{Mode: ModeExhaustive}),
		"linear_parallel":      New(Options{Mode: ModeLinear, Workers: 4}),
		"exhaustive_parallel":  New(Options{Mode: ModeExhaustive, Workers: 3}),
		"sliding_with_workers": New(Options{Mode: ModeSliding, Workers: 8}),
	}
}

func TestComputeWindowMetrics(t *testing.T) {
	got, err := ComputeWindowMetrics(5, 3, []int64{1, 2, 3, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 0, -2}, got)
}

func TestAnalyzer_Compute_AllModes(t *testing.T) {
	for name, a := range allAnalyzers() {
		t.Run(name, func(t *testing.T) {
			got, err := a.Compute(context.Background(), 5, 3, []int64{1, 2, 3, 1, 1})
			require.NoError(t, err)
			assert.Equal(t, []int64{3, 0, -2}, got)
		})
	}
}

func TestAnalyzer_Compute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		n, k   int
		values []int64
		field  string
	}{
		{name: "window_larger_than_sequence", n: 5, k: 6, values: []int64{1, 2, 3, 4, 5}, field: "k"},
		{name: "length_mismatch", n: 5, k: 3, values: []int64{1, 2, 3, 4}, field: "values"},
		{name: "zero_n", n: 0, k: 0, values: nil, field: "n"},
		{name: "zero_k", n: 3, k: 0, values: []int64{1, 2, 3}, field: "k"},
		{name: "too_long", n: MaxSequenceLength + 1, k: 1, values: nil, field: "n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, a := range allAnalyzers() {
				got, err := a.Compute(context.Background(), tt.n, tt.k, tt.values)
				require.Error(t, err, name)
				assert.Nil(t, got, name)
				assert.ErrorIs(t, err, ErrInvalidInput, name)
				assert.NotErrorIs(t, err, ErrInvariantViolation, name)

				var inv *InvalidInputError
				require.True(t, errors.As(err, &inv), name)
				assert.Equal(t, tt.field, inv.Field, name)
			}
		})
	}
}

func TestAnalyzer_Compute_MaxLength(t *testing.T) {
	values := make([]int64, MaxSequenceLength)
	for i := range values {
		values[i] = int64(i % 7)
	}
	got, err := New(Options{}).Compute(context.Background(), MaxSequenceLength, 1000, values)
	require.NoError(t, err)
	assert.Len(t, got, MaxSequenceLength-1000+1)
}

func TestAnalyzer_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(2024))
	analyzers := allAnalyzers()
	for i := 0; i < 150; i++ {
		n := 1 + rnd.Intn(80)
		k := 1 + rnd.Intn(n)
		values := randomValues(rnd, n, 1+rnd.Intn(6))

		reference, err := analyzers["exhaustive"].Compute(context.Background(), n, k, values)
		require.NoError(t, err)

		// по метрике на окно
		require.Len(t, reference, n-k+1)

		// |metric| <= K(K-1)/2
		bound := int64(k * (k - 1) / 2)
		for _, m := range reference {
			assert.GreaterOrEqual(t, m, -bound)
			assert.LessOrEqual(t, m, bound)
		}

		for name, a := range analyzers {
			got, err := a.Compute(context.Background(), n, k, values)
			require.NoError(t, err)
			assert.Equal(t, reference, got, "%s n=%d k=%d values=%v", name, n, k, values)
		}
	}
}

func TestAnalyzer_WindowOfOne(t *testing.T) {
	for name, a := range allAnalyzers() {
		got, err := a.Compute(context.Background(), 6, 1, []int64{5, 1, 4, 4, -2, 9})
		require.NoError(t, err, name)
		assert.Equal(t, []int64{0, 0, 0, 0, 0, 0}, got, name)
	}
}

func TestAnalyzer_StrictlyIncreasing(t *testing.T) {
	values := []int64{-3, 0, 2, 10, 11, 40}
	k := len(values)
	for name, a := range allAnalyzers() {
		bd, err := a.Breakdown(context.Background(), k, k, values)
		require.NoError(t, err, name)
		require.Len(t, bd, 1, name)
		assert.Equal(t, int64(k*(k-1)/2), bd[0].Delta, name)
		assert.Equal(t, int64(k*(k-1)/2), bd[0].NonDecreasing, name)
		assert.Zero(t, bd[0].NonIncreasing, name)
	}
}

func TestAnalyzer_Constant(t *testing.T) {
	for name, a := range allAnalyzers() {
		got, err := a.Compute(context.Background(), 7, 4, []int64{3, 3, 3, 3, 3, 3, 3})
		require.NoError(t, err, name)
		assert.Equal(t, []int64{0, 0, 0, 0}, got, name)
	}
}

func TestAnalyzer_Reverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	a := New(Options{})
	for i := 0; i < 100; i++ {
		k := 1 + rnd.Intn(25)
		w := randomValues(rnd, k, 4)
		r := slices.Clone(w)
		slices.Reverse(r)

		got, err := a.Compute(context.Background(), k, k, w)
		require.NoError(t, err)
		rev, err := a.Compute(context.Background(), k, k, r)
		require.NoError(t, err)
		assert.Equal(t, -got[0], rev[0], "%v", w)
	}
}

func TestAnalyzer_Breakdown(t *testing.T) {
	got, err := New(Options{Mode: ModeLinear}).Breakdown(context.Background(), 5, 3, []int64{1, 2, 3, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []models.WindowMetric{
		{Index: 0, Start: 0, End: 3, NonDecreasing: 3, NonIncreasing: 0, Delta: 3},
		{Index: 1, Start: 1, End: 4, NonDecreasing: 1, NonIncreasing: 1, Delta: 0},
		{Index: 2, Start: 2, End: 5, NonDecreasing: 1, NonIncreasing: 3, Delta: -2},
	}, got)
}

func TestAnalyzer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, a := range allAnalyzers() {
		_, err := a.Compute(ctx, 5, 3, []int64{1, 2, 3, 1, 1})
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestCheckLength(t *testing.T) {
	require.NoError(t, checkLength(3, 3))

	err := checkLength(2, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "expected 3 window metrics, got 2")
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":           ModeSliding,
		"sliding":    ModeSliding,
		" Linear ":   ModeLinear,
		"EXHAUSTIVE": ModeExhaustive,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("quadratic")
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	a := New(Options{Workers: -3})
	assert.Equal(t, ModeSliding, a.Mode())
	assert.Equal(t, 1, a.opts.Workers)
}
