package analyzer

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountRuns(t *testing.T) {
	tests := []struct {
		name          string
		window        []int64
		nonDecreasing int64
		nonIncreasing int64
	}{
		{name: "empty", window: nil},
		{name: "single", window: []int64{7}},
		{name: "increasing", window: []int64{1, 2, 3}, nonDecreasing: 3},
		{name: "peak", window: []int64{2, 3, 1}, nonDecreasing: 1, nonIncreasing: 1},
		{name: "drop_then_flat", window: []int64{3, 1, 1}, nonDecreasing: 1, nonIncreasing: 3},
		{name: "constant", window: []int64{5, 5, 5, 5}, nonDecreasing: 6, nonIncreasing: 6},
		{name: "zigzag", window: []int64{1, 3, 2, 4, 3}, nonDecreasing: 2, nonIncreasing: 2},
		{name: "negative", window: []int64{-1, -5, -5, 0}, nonDecreasing: 3, nonIncreasing: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, count := range map[string]Counter{"linear": CountRuns, "exhaustive": CountRunsExhaustive} {
				assert.Equal(t, tt.nonDecreasing, count(tt.window, NonDecreasing), name)
				assert.Equal(t, tt.nonIncreasing, count(tt.window, NonIncreasing), name)
			}
		})
	}
}

func TestCountRuns_MatchesExhaustive(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		w := randomValues(rnd, 1+rnd.Intn(40), 4)
		assert.Equal(t, CountRunsExhaustive(w, NonDecreasing), CountRuns(w, NonDecreasing), "%v", w)
		assert.Equal(t, CountRunsExhaustive(w, NonIncreasing), CountRuns(w, NonIncreasing), "%v", w)
	}
}

func TestMetric_Reverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		w := randomValues(rnd, 1+rnd.Intn(30), 5)
		r := slices.Clone(w)
		slices.Reverse(r)

		assert.Equal(t, CountRuns(w, NonIncreasing), CountRuns(r, NonDecreasing))
		assert.Equal(t, -Metric(w, CountRuns), Metric(r, CountRuns))
	}
}

func TestSlidingTotals(t *testing.T) {
	seq := []int64{1, 2, 3, 1, 1}
	assert.Equal(t, []int64{3, 1, 1}, slidingTotals(seq, 3, NonDecreasing))
	assert.Equal(t, []int64{0, 1, 3}, slidingTotals(seq, 3, NonIncreasing))
	assert.Equal(t, []int64{0, 0, 0, 0, 0}, slidingTotals(seq, 1, NonDecreasing))
	assert.Equal(t, []int64{4}, slidingTotals(seq, 5, NonDecreasing))
}

func TestSlidingTotals_MatchesPerWindow(t *testing.T) {
	rnd := rand.New(rand.NewSource(1337))
	for i := 0; i < 300; i++ {
		n := 1 + rnd.Intn(60)
		k := 1 + rnd.Intn(n)
		seq := randomValues(rnd, n, 3)

		for _, ok := range []Comparator{NonDecreasing, NonIncreasing} {
			got := slidingTotals(seq, k, ok)
			for s := range got {
				assert.Equal(t, CountRunsExhaustive(seq[s:s+k], ok), got[s], "seq=%v k=%d s=%d", seq, k, s)
			}
		}
	}
}

// randomValues — маленький диапазон, чтобы чаще встречались равные соседи.
func randomValues(rnd *rand.Rand, n int, spread int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(rnd.Intn(spread)) - int64(spread/2)
	}
	return out
}
