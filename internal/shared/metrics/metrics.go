// Package metrics exposes Prometheus instrumentation for the generation
// pipeline.
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	generationStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generation_started_total",
		Help: "Total CV generations started.",
	})
	generationCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generation_completed_total",
		Help: "Total CV generations completed.",
	})
	generationFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "generation_failed_total",
		Help: "Total CV generations failed.",
	})
	downloadTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdf_download_total",
		Help: "Total PDF downloads served.",
	})
	creditConsumedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_consumed_total",
		Help: "Total credits consumed by downloads.",
	})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "generation_duration_seconds",
		Help:    "End-to-end CV generation duration in seconds.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})
)

// IncGenerationStarted increments the started counter.
func IncGenerationStarted() {
	generationStartedTotal.Inc()
}

// IncGenerationCompleted increments the completed counter.
func IncGenerationCompleted() {
	generationCompletedTotal.Inc()
}

// IncGenerationFailed increments the failed counter.
func IncGenerationFailed() {
	generationFailedTotal.Inc()
}

// IncDownload increments the PDF download counter.
func IncDownload() {
	downloadTotal.Inc()
}

// IncCreditConsumed increments the consumed-credit counter.
func IncCreditConsumed() {
	creditConsumedTotal.Inc()
}

// ObserveGenerationDuration records one generation's elapsed time.
func ObserveGenerationDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	generationDuration.Observe(d.Seconds())
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
