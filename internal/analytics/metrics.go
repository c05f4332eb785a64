package analytics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	metricsOnce sync.Once

	operationsTotal       *prometheus.CounterVec
	operationDuration     *prometheus.HistogramVec
	modelTrained          prometheus.Gauge
	modelTrainingDuration prometheus.Histogram
)

// initMetrics registers the analytics collectors with the default registry. Safe to call
// from every New.
func initMetrics() {
	metricsOnce.Do(func() {
		// Labels: operation, outcome (success, error)
		operationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "luna",
				Name:      "operations_total",
				Help:      "Total number of analytics operations by outcome",
			},
			[]string{"operation", "outcome"},
		)

		operationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "luna",
				Name:      "operation_duration_seconds",
				Help:      "Duration of analytics operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		)

		// 1 when a forecast model is loaded, 0 when forecasting is disabled.
		modelTrained = promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "luna",
				Name:      "model_trained",
				Help:      "Whether a forecast model is loaded (1) or not (0)",
			},
		)

		modelTrainingDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "luna",
				Name:      "model_training_duration_seconds",
				Help:      "Time spent training the forecast model",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		)
	})
}
