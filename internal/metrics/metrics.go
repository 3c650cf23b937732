// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route, method and status.",
	}, []string{"route", "method", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	exercisesRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "exercises",
		Name:      "recorded_total",
		Help:      "Exercises stored since process start.",
	})
	logEntries = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "logs",
		Name:      "entries_returned",
		Help:      "Number of entries returned per log query.",
		Buckets:   []float64{0, 1, 5, 10, 50, 100, 250, 500},
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, exercisesRecorded, logEntries)
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordExercise counts a stored exercise.
func RecordExercise() {
	exercisesRecorded.Inc()
}

// ObserveLogSize records how many entries a log query returned.
func ObserveLogSize(n int) {
	logEntries.Observe(float64(n))
}
