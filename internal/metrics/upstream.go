package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream (cloud service) Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photoindex",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream service calls",
		},
		[]string{"service", "operation", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "photoindex",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream service call duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"service", "operation"},
	)

	PhotosIndexedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photoindex",
			Name:      "photos_indexed_total",
			Help:      "Photos processed by the ingestion handler",
		},
		[]string{"status"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photoindex",
			Name:      "searches_total",
			Help:      "Searches served by the query handler",
		},
		[]string{"outcome"}, // "hit" / "miss" / "no_labels" / "error"
	)
)

var registerOnce sync.Once

// RegisterUpstreamMetrics registers upstream and handler metrics. Must be called once from main.
func RegisterUpstreamMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(UpstreamRequestsTotal)
		prometheus.MustRegister(UpstreamRequestDuration)
		prometheus.MustRegister(PhotosIndexedTotal)
		prometheus.MustRegister(SearchesTotal)
	})
}

// ObserveUpstream records one upstream call that started at start.
func ObserveUpstream(service, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(service, operation, status).Inc()
	UpstreamRequestDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}
