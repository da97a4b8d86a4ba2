package analyzer

import "fmt"

// Window — окно [Start, End) поверх исходной последовательности, без копии данных.
type Window struct {
	Index int
	Start int
	End   int
}

func (w Window) Len() int { return w.End - w.Start }

// Of возвращает значения окна как под-слайс seq.
func (w Window) Of(seq []int64) []int64 { return seq[w.Start:w.End] }

func (w Window) String() string { return fmt.Sprintf("#%d[%d,%d)", w.Index, w.Start, w.End) }

// Windows строит все окна длины k слева направо: окно i начинается с индекса i.
func Windows(n, k int) ([]Window, error) {
	if n < 1 {
		return nil, &InvalidInputError{Field: "n", Reason: fmt.Sprintf("must be at least 1, got %d", n)}
	}
	if k < 1 || k > n {
		return nil, &InvalidInputError{Field: "k", Reason: fmt.Sprintf("must be in [1, %d], got %d", n, k)}
	}
	out := make([]Window, 0, n-k+1)
	for i := 0; i+k <= n; i++ {
		out = append(out, Window{Index: i, Start: i, End: i + k})
	}
	return out, nil
}
