package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows(t *testing.T) {
	ws, err := Windows(5, 3)
	require.NoError(t, err)
	assert.Equal(t, []Window{
		{Index: 0, Start: 0, End: 3},
		{Index: 1, Start: 1, End: 4},
		{Index: 2, Start: 2, End: 5},
	}, ws)

	seq := []int64{1, 2, 3, 1, 1}
	assert.Equal(t, []int64{2, 3, 1}, ws[1].Of(seq))
	assert.Equal(t, 3, ws[2].Len())
	assert.Equal(t, "#2[2,5)", ws[2].String())
}

func TestWindows_Single(t *testing.T) {
	ws, err := Windows(4, 4)
	require.NoError(t, err)
	assert.Len(t, ws, 1)

	ws, err = Windows(4, 1)
	require.NoError(t, err)
	assert.Len(t, ws, 4)
}

func TestWindows_Invalid(t *testing.T) {
	for _, tc := range []struct{ n, k int }{{0, 1}, {5, 0}, {5, 6}, {-1, -1}} {
		_, err := Windows(tc.n, tc.k)
		assert.ErrorIs(t, err, ErrInvalidInput, "n=%d k=%d", tc.n, tc.k)
	}
}
