// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EvaluationsTotal counts finished evaluations by outcome (failure kind, "none" on success).
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_evaluations_total",
			Help: "Evaluations handled, by outcome",
		},
		[]string{"outcome"},
	)

	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cv_ai_request_duration_seconds",
			Help:    "Latency of calls to the AI provider",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90, 120},
		},
		[]string{"provider", "status"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cv_pdf_extraction_duration_seconds",
			Help:    "Time spent extracting text from uploaded PDFs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"document", "status"},
	)
)

func RecordEvaluation(outcome string) {
	EvaluationsTotal.WithLabelValues(outcome).Inc()
}

func ObserveAIRequest(provider string, err error, started time.Time) {
	AIRequestDuration.WithLabelValues(provider, status(err)).Observe(time.Since(started).Seconds())
}

func ObserveExtraction(document string, err error, started time.Time) {
	ExtractionDuration.WithLabelValues(document, status(err)).Observe(time.Since(started).Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
