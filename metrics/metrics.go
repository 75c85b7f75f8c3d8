package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Remote video API metrics
	YouTubeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_api_requests_total",
			Help: "Total number of YouTube Data API requests",
		},
		[]string{"op", "status"},
	)

	YouTubeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "youtube_api_request_duration_seconds",
			Help:    "YouTube Data API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// History store metrics
	HistoryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_operations_total",
			Help: "Total number of history store operations",
		},
		[]string{"store", "operation"},
	)

	// Swallowed storage failures, never surfaced to clients.
	StorageFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_failures_total",
			Help: "Total number of swallowed storage failures",
		},
		[]string{"store", "operation"},
	)

	// NATS metrics
	NatsMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of NATS messages published",
		},
		[]string{"subject", "status"},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment).Set(1)
}
