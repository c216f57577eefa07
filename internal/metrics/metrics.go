// Package metrics exposes Prometheus instrumentation for the Compass service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "scoring",
			Name:      "predictions_total",
			Help:      "Total number of predictions recorded, by risk tier",
		},
		[]string{"tier"},
	)

	simulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "scoring",
			Name:      "simulations_total",
			Help:      "Total number of what-if simulations run, by commit outcome",
		},
		[]string{"committed"},
	)

	evaluationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "compass",
		Subsystem: "scoring",
		Name:      "evaluation_errors_total",
		Help:      "Total number of evaluation requests rejected for bad input",
	})

	predictionProbability = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "compass",
		Subsystem: "scoring",
		Name:      "prediction_probability",
		Help:      "Distribution of predicted success probabilities",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})
)

// RecordPrediction counts a recorded prediction and observes its probability.
func RecordPrediction(tier string, probability float64) {
	predictionsTotal.WithLabelValues(tier).Inc()
	predictionProbability.Observe(probability)
}

// RecordSimulation counts a simulation run.
func RecordSimulation(committed bool) {
	simulationsTotal.WithLabelValues(strconv.FormatBool(committed)).Inc()
}

// RecordEvaluationError counts an evaluation request rejected for bad input.
func RecordEvaluationError() {
	evaluationErrors.Inc()
}
