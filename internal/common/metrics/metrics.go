// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpa_validations_total",
			Help: "Total number of record validations by outcome",
		},
		[]string{"outcome", "error_code"},
	)

	DocumentMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpa_document_mutations_total",
			Help: "Total number of document mutations by kind and status",
		},
		[]string{"kind", "status"},
	)

	ReplacementCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rpa_marker_replacements",
			Help:    "Marker replacements performed per word-processing run",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		},
	)

	MutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rpa_document_mutation_duration_seconds",
			Help: "Duration of a single open-mutate-save sequence",
		},
		[]string{"kind"},
	)
)
