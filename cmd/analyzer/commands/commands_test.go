package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"upvotes_analyzer/internal/analyzer"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestCompute_Text(t *testing.T) {
	out, err := run(t, "", "compute", "-n", "5", "-k", "3", "-v", "1,2,3,1,1")
	require.NoError(t, err)
	assert.Equal(t, "N: 5\nK: 3\nValues: 1 2 3 1 1\nResults: [3 0 -2]\n", out)
}

func TestCompute_JSON(t *testing.T) {
	for _, mode := range []string{"sliding", "linear", "exhaustive"} {
		t.Run(mode, func(t *testing.T) {
			out, err := run(t, "", "compute", "-k", "3", "-v", "1,2,3,1,1", "--mode", mode, "--workers", "2", "-o", "json")
			require.NoError(t, err)

			var res computeResult
			require.NoError(t, sonic.UnmarshalString(out, &res))
			assert.Equal(t, 5, res.N)
			assert.Equal(t, mode, res.Mode)
			assert.Equal(t, []int64{3, 0, -2}, res.Metrics)
		})
	}
}

func TestCompute_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n1, 1\n"), 0o600))

	out, err := run(t, "", "compute", "-k", "3", "--file", path, "-o", "yaml")
	require.NoError(t, err)

	var res computeResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int64{3, 0, -2}, res.Metrics)
}

func TestCompute_FromStdin(t *testing.T) {
	out, err := run(t, "4 4 1", "compute", "-k", "2", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Results: [0 -1]")
}

func TestCompute_InvalidInput(t *testing.T) {
	_, err := run(t, "", "compute", "-n", "5", "-k", "6", "-v", "1,2,3,4,5")
	require.Error(t, err)
	assert.ErrorIs(t, err, analyzer.ErrInvalidInput)

	_, err = run(t, "", "compute", "-n", "5", "-k", "3", "-v", "1,2,3,4")
	assert.ErrorIs(t, err, analyzer.ErrInvalidInput)

	// явный -n 0 не подменяется числом значений
	_, err = run(t, "", "compute", "-n", "0", "-k", "1", "-v", "7")
	var inv *analyzer.InvalidInputError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "n", inv.Field)
}

func TestCompute_BadFlags(t *testing.T) {
	_, err := run(t, "", "compute", "-k", "2", "-v", "1,2", "--mode", "quadratic")
	assert.Error(t, err)

	_, err = run(t, "", "compute", "-k", "2", "-v", "1,2", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "1 2", "compute", "-k", "2", "-v", "1,2", "--file", "-")
	assert.ErrorContains(t, err, "either --values or --file")
}

func TestBreakdown_Text(t *testing.T) {
	out, err := run(t, "", "breakdown", "-k", "3", "-v", "1,2,3,1,1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "window 0 [1 2 3]: non-decreasing=3 non-increasing=0 delta=3", lines[1])
	assert.Equal(t, "window 2 [3 1 1]: non-decreasing=1 non-increasing=3 delta=-2", lines[3])
}

func TestBreakdown_JSON(t *testing.T) {
	out, err := run(t, "", "breakdown", "-k", "2", "-v", "4,4,1", "-o", "json")
	require.NoError(t, err)

	var res breakdownResult
	require.NoError(t, sonic.UnmarshalString(out, &res))
	require.Len(t, res.Windows, 2)
	assert.Equal(t, int64(1), res.Windows[0].NonDecreasing)
	assert.Equal(t, int64(1), res.Windows[0].NonIncreasing)
	assert.Equal(t, int64(-1), res.Windows[1].Delta)
}

func TestParseValues(t *testing.T) {
	got, err := parseValues(strings.NewReader(" -3,\t0\r\n7 "))
	require.NoError(t, err)
	assert.Equal(t, []int64{-3, 0, 7}, got)

	_, err = parseValues(strings.NewReader("1 x 3"))
	assert.ErrorContains(t, err, "value #2")
}
