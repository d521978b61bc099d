package mapir

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapir_requests_total",
		Help: "Total number of map.ir operations by outcome",
	}, []string{"operation", "result"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mapir_request_duration_seconds",
		Help:    "Duration of map.ir upstream calls",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
	}, []string{"operation"})
)

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if e, ok := err.(*Error); ok {
		return string(e.Kind) + "_error"
	}
	return "error"
}

// countResult is called exactly once per operation.
func countResult(operation string, err error) {
	requestsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func observeDuration(operation string, seconds float64) {
	requestDuration.WithLabelValues(operation).Observe(seconds)
}
