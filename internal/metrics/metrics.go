package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tracks outbound page requests to the Shopify products endpoint.
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_remote_requests_total",
			Help: "Total number of Shopify product page requests (by status class).",
		},
		[]string{"status"}, // 2xx | 4xx | 5xx | error
	)

	RemoteRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_sync_remote_request_duration_seconds",
			Help:    "Duration of Shopify product page requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms → ~20s
		},
	)

	// Tracks completed sync runs by result.
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_runs_total",
			Help: "Total number of catalog sync runs.",
		},
		[]string{"source", "result"}, // result = "ok" | "error"
	)

	SyncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_sync_run_duration_seconds",
			Help:    "Duration of catalog sync runs in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Tracks per-record outcomes.
	SyncProductsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_products_total",
			Help: "Remote products processed by sync runs.",
		},
		[]string{"outcome"}, // synced | skipped
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"method", "status"},
	)
)

// RecordRemoteRequest records one Shopify page request. A zero status means
// the request never produced a response.
func RecordRemoteRequest(statusCode int, duration time.Duration) {
	RemoteRequestsTotal.WithLabelValues(ClassifyStatus(statusCode)).Inc()
	RemoteRequestDuration.Observe(duration.Seconds())
}

// RecordSyncRun records the outcome of a sync run.
func RecordSyncRun(source string, synced, skipped int, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SyncRunsTotal.WithLabelValues(source, result).Inc()
	SyncRunDuration.WithLabelValues(source).Observe(duration.Seconds())
	SyncProductsTotal.WithLabelValues("synced").Add(float64(synced))
	SyncProductsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method string, statusCode int) {
	HTTPRequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// ClassifyStatus maps an HTTP status code to its class label.
func ClassifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "error"
}

// Handler returns the HTTP handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
