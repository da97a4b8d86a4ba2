package commands

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/internal/models"
)

// inputOptions — общие флаги compute и breakdown.
type inputOptions struct {
	n       int
	k       int
	values  []int64
	file    string
	mode    string
	workers int
	output  string
}

func (o *inputOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&o.n, "n", "n", 0, "number of values (defaults to the number supplied)")
	f.IntVarP(&o.k, "k", "k", 0, "window size")
	f.Int64SliceVarP(&o.values, "values", "v", nil, "comma separated values")
	f.StringVarP(&o.file, "file", "f", "", "read values from file ('-' for stdin), whitespace or comma separated")
	f.StringVar(&o.mode, "mode", string(analyzer.ModeSliding), "sliding|linear|exhaustive")
	f.IntVar(&o.workers, "workers", 1, "parallel workers for linear/exhaustive modes")
	f.StringVarP(&o.output, "output", "o", formatText, "text|json|yaml")
	_ = cmd.MarkFlagRequired("k")
}

func (o *inputOptions) analyzer() (*analyzer.Analyzer, error) {
	mode, err := analyzer.ParseMode(o.mode)
	if err != nil {
		return nil, err
	}
	return analyzer.New(analyzer.Options{Mode: mode, Workers: o.workers}), nil
}

// request собирает вход. Без -n берём N = числу значений; явный -n (в том числе 0) идёт в валидацию.
func (o *inputOptions) request(cmd *cobra.Command) (models.AnalyzeRequest, error) {
	stdin := cmd.InOrStdin()
	values := o.values
	if o.file != "" {
		if len(values) > 0 {
			return models.AnalyzeRequest{}, errors.New("use either --values or --file")
		}
		r := stdin
		if o.file != "-" {
			f, err := os.Open(o.file)
			if err != nil {
				return models.AnalyzeRequest{}, errors.Wrap(err, "open values file")
			}
			defer func() {
				_ = f.Close()
			}()
			r = f
		}
		parsed, err := parseValues(r)
		if err != nil {
			return models.AnalyzeRequest{}, err
		}
		values = parsed
	}
	n := len(values)
	if cmd.Flags().Changed("n") {
		n = o.n
	}
	return models.AnalyzeRequest{N: n, K: o.k, Values: values}, nil
}

func parseValues(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read values")
	}
	fields := strings.FieldsFunc(string(data), func(c rune) bool {
		return c == ',' || c == ' ' || c == '\n' || c == '\r' || c == '\t'
	})
	out := make([]int64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value #%d", i+1)
		}
		out = append(out, v)
	}
	return out, nil
}
