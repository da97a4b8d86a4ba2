package analyzer

import "fmt"

// MaxSequenceLength — верхняя граница N.
const MaxSequenceLength = 100000

// Validate проверяет N, K и длину значений до любого расчёта.
func Validate(n, k int, values []int64) error {
	switch {
	case n < 1:
		return &InvalidInputError{Field: "n", Reason: fmt.Sprintf("must be at least 1, got %d", n)}
	case n > MaxSequenceLength:
		return &InvalidInputError{Field: "n", Reason: fmt.Sprintf("must not exceed %d, got %d", MaxSequenceLength, n)}
	case k < 1:
		return &InvalidInputError{Field: "k", Reason: fmt.Sprintf("must be at least 1, got %d", k)}
	case k > n:
		return &InvalidInputError{Field: "k", Reason: fmt.Sprintf("window size %d exceeds sequence length %d", k, n)}
	case len(values) != n:
		return &InvalidInputError{Field: "values", Reason: fmt.Sprintf("got %d values, want %d", len(values), n)}
	}
	return nil
}

// checkLength — последняя страховка: ровно N-K+1 метрик.
func checkLength(got, want int) error {
	if got != want {
		return &InvariantViolation{Want: want, Got: got}
	}
	return nil
}
