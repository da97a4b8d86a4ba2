package analyzer

// Comparator — условие на соседнюю пару (prev, next).
type Comparator func(prev, next int64) bool

// NonDecreasing: каждый элемент не меньше предыдущего.
func NonDecreasing(prev, next int64) bool { return prev <= next }

// NonIncreasing: каждый элемент не больше предыдущего.
func NonIncreasing(prev, next int64) bool { return prev >= next }

// Counter считает подотрезки длины >= 2, на которых ok выполняется для всех соседних пар.
type Counter func(w []int64, ok Comparator) int64

// CountRuns — за один проход: r-я подряд выполненная пара добавляет r подотрезков.
func CountRuns(w []int64, ok Comparator) int64 {
	var total, run int64
	for i := 1; i < len(w); i++ {
		if !ok(w[i-1], w[i]) {
			run = 0
			continue
		}
		run++
		total += run
	}
	return total
}

// CountRunsExhaustive — перебор: от каждого начала расширяем, пока пара не нарушит условие.
func CountRunsExhaustive(w []int64, ok Comparator) int64 {
	var total int64
	for a := 0; a < len(w)-1; a++ {
		for b := a + 1; b < len(w); b++ {
			if !ok(w[b-1], w[b]) {
				break
			}
			total++
		}
	}
	return total
}

// Metric — разница неубывающих и невозрастающих подотрезков окна.
func Metric(w []int64, count Counter) int64 {
	return count(w, NonDecreasing) - count(w, NonIncreasing)
}

// slidingTotals считает по всем окнам длины k число подотрезков с условием ok за O(N).
// fwd[j] — сколько выполненных пар подряд начинается с пары j,
// bwd[j] — сколько заканчивается на паре j. При сдвиге окна уходят подотрезки
// с началом s, приходят подотрезки с концом s+k.
func slidingTotals(seq []int64, k int, ok Comparator) []int64 {
	n := len(seq)
	out := make([]int64, n-k+1)
	if k < 2 {
		return out
	}

	pairs := n - 1
	fwd := make([]int64, pairs)
	bwd := make([]int64, pairs)
	for j := 0; j < pairs; j++ {
		if ok(seq[j], seq[j+1]) {
			bwd[j] = 1
			if j > 0 {
				bwd[j] += bwd[j-1]
			}
		}
	}
	for j := pairs - 1; j >= 0; j-- {
		if ok(seq[j], seq[j+1]) {
			fwd[j] = 1
			if j+1 < pairs {
				fwd[j] += fwd[j+1]
			}
		}
	}

	limit := int64(k - 1)
	var total int64
	for j := 0; j < k-1; j++ {
		total += bwd[j]
	}
	out[0] = total
	for s := 0; s+k < n; s++ {
		total -= min(fwd[s], limit)
		total += min(bwd[s+k-1], limit)
		out[s+1] = total
	}
	return out
}
