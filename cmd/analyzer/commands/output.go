package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"upvotes_analyzer/internal/models"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type computeResult struct {
	N       int     `json:"n" yaml:"n"`
	K       int     `json:"k" yaml:"k"`
	Mode    string  `json:"mode" yaml:"mode"`
	Values  []int64 `json:"values" yaml:"values"`
	Metrics []int64 `json:"metrics" yaml:"metrics"`
}

type breakdownResult struct {
	N       int                   `json:"n" yaml:"n"`
	K       int                   `json:"k" yaml:"k"`
	Mode    string                `json:"mode" yaml:"mode"`
	Windows []models.WindowMetric `json:"windows" yaml:"windows"`
}

func writeOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch strings.ToLower(format) {
	case formatText, "":
		text(w)
		return nil
	case formatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal json")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshal yaml")
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.Errorf("unknown output format %q (want text|json|yaml)", format)
	}
}

func joinValues(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

func (r computeResult) text(w io.Writer) {
	fmt.Fprintf(w, "N: %d\n", r.N)
	fmt.Fprintf(w, "K: %d\n", r.K)
	fmt.Fprintf(w, "Values: %s\n", joinValues(r.Values))
	fmt.Fprintf(w, "Results: %v\n", r.Metrics)
}

func (r breakdownResult) text(values []int64) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintf(w, "N: %d K: %d mode: %s\n", r.N, r.K, r.Mode)
		for _, m := range r.Windows {
			fmt.Fprintf(w, "window %d %v: non-decreasing=%d non-increasing=%d delta=%d\n",
				m.Index, values[m.Start:m.End], m.NonDecreasing, m.NonIncreasing, m.Delta)
		}
	}
}
