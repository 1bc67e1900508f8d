package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConversionsTotal counts conversion requests by outcome.
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cca_conversions_total",
		Help: "Total number of currency conversion requests",
	}, []string{"status"})

	// ConversionDuration observes conversion request handling time.
	ConversionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cca_conversion_duration_seconds",
		Help:    "Duration of currency conversion requests",
		Buckets: prometheus.DefBuckets,
	})

	// SyncRunsTotal counts provider sync runs by kind and outcome.
	SyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cca_sync_runs_total",
		Help: "Total number of provider sync runs",
	}, []string{"kind", "status"})

	// SyncDuration observes provider sync run duration by kind.
	SyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cca_sync_duration_seconds",
		Help:    "Duration of provider sync runs",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"kind"})

	// SyncEntriesSaved counts rate and currency entries written by sync runs.
	SyncEntriesSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cca_sync_entries_saved_total",
		Help: "Total number of entries written by provider sync runs",
	}, []string{"kind"})
)
