package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netlint_analysis_seconds",
		Help:    "Time spent analyzing a single compilation unit.",
		Buckets: prometheus.DefBuckets,
	})

	LoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netlint_load_seconds",
		Help:    "Time spent loading and decoding a compilation unit.",
		Buckets: prometheus.DefBuckets,
	})

	UnitsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "netlint_units_loaded_total",
		Help: "Number of compilation units in the current analysis set.",
	})

	DiagnosticsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netlint_diagnostics_total",
		Help: "Total number of diagnostics emitted, by rule.",
	}, []string{"rule"})

	RulePanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netlint_rule_panics_total",
		Help: "Total number of rule faults that aborted a compilation unit.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netlint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RescansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netlint_rescans_total",
		Help: "Total number of re-analysis runs triggered by file changes.",
	})
)
