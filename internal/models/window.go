package models

import "time"

// AnalyzeRequest — входные данные: N значений и размер окна K.
type AnalyzeRequest struct {
	N      int     `json:"n" yaml:"n"`
	K      int     `json:"k" yaml:"k"`
	Values []int64 `json:"values" yaml:"values"`
}

// WindowMetric — разбивка одного окна.
type WindowMetric struct {
	Index         int   `json:"index" yaml:"index"`
	Start         int   `json:"start" yaml:"start"`
	End           int   `json:"end" yaml:"end"` // не включая
	NonDecreasing int64 `json:"non_decreasing" yaml:"non_decreasing"`
	NonIncreasing int64 `json:"non_increasing" yaml:"non_increasing"`
	Delta         int64 `json:"delta" yaml:"delta"`
}

// Run — результат одного расчёта, то что храним и отдаём наружу.
type Run struct {
	ID        string        `json:"run_id" yaml:"run_id"`
	N         int           `json:"n" yaml:"n"`
	K         int           `json:"k" yaml:"k"`
	Mode      string        `json:"mode" yaml:"mode"`
	Values    []int64       `json:"values,omitempty" yaml:"values,omitempty"`
	Metrics   []int64       `json:"metrics" yaml:"metrics"`
	Cached    bool          `json:"cached" yaml:"cached"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}
