package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts outbound API requests by method, path, and status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_api_requests_total",
		Help: "Total number of outbound API requests by method, path, and status code",
	}, []string{"method", "path", "status"})

	// APIRequestLatency records outbound API request latency by path.
	APIRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "launchpad_api_request_latency_seconds",
		Help:    "Outbound API request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// APIRequestErrors counts transport-level failures (no HTTP response).
	APIRequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_api_request_errors_total",
		Help: "Total number of outbound API requests that failed at the transport level",
	}, []string{"method", "path"})

	// TokenStoreErrors counts token store failures by operation.
	TokenStoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_token_store_errors_total",
		Help: "Total number of token store errors by operation",
	}, []string{"operation"})

	// SubmissionsTotal counts content submissions by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_content_submissions_total",
		Help: "Total number of content submissions by outcome",
	}, []string{"outcome"})
)

// TrackRequest returns a function that records request latency when called (e.g. defer).
func TrackRequest(method, path string) func() {
	start := time.Now()
	return func() {
		APIRequestLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
