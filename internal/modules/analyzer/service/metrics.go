package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK        = "ok"
	resultInvalid   = "invalid_input"
	resultInvariant = "invariant_violation"
	resultFailed    = "failed"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "upvotes",
		Subsystem: "analyzer",
		Name:      "runs_total",
		Help:      "Analysis runs by result.",
	}, []string{"result"})

	windowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "upvotes",
		Subsystem: "analyzer",
		Name:      "windows_total",
		Help:      "Windows evaluated across all runs.",
	})

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "upvotes",
		Subsystem: "analyzer",
		Name:      "cache_hits_total",
		Help:      "Runs answered from the metrics cache.",
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "upvotes",
		Subsystem: "analyzer",
		Name:      "run_duration_seconds",
		Help:      "Time spent computing window metrics.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)
