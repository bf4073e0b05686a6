// Package observability exposes the service's Prometheus metrics.
// Collectors are registered on the default registry at init time and
// recorded through small helper functions so callers never touch the
// collector variables directly.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "integrations"

// Outcome labels for completed OAuth flows.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests served, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds, by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	oauthFlowsStartedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "oauth_flows_started_total",
			Help:      "Authorization flows started, by provider.",
		},
		[]string{"provider"},
	)

	oauthFlowsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "oauth_flows_completed_total",
			Help:      "Authorization callbacks handled, by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	itemsFetchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "items_fetched_total",
			Help:      "Normalised items returned to clients, by provider and kind.",
		},
		[]string{"provider", "kind"},
	)

	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "provider_requests_total",
			Help:      "Outbound provider API requests, by provider, operation and status code.",
		},
		[]string{"provider", "operation", "status"},
	)

	cleanupRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "store_cleanup_runs_total",
			Help:      "Store cleanup sweeps, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		oauthFlowsStartedTotal,
		oauthFlowsCompletedTotal,
		itemsFetchedTotal,
		providerRequestsTotal,
		cleanupRunsTotal,
	)
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordAuthorizationStarted records an issued authorization URL.
func RecordAuthorizationStarted(provider string) {
	oauthFlowsStartedTotal.WithLabelValues(provider).Inc()
}

// RecordAuthorizationCompleted records a handled OAuth callback.
func RecordAuthorizationCompleted(provider, outcome string) {
	oauthFlowsCompletedTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordItemsFetched records items returned from a provider fetch.
func RecordItemsFetched(provider, kind string, n int) {
	if n <= 0 {
		return
	}
	itemsFetchedTotal.WithLabelValues(provider, kind).Add(float64(n))
}

// RecordProviderRequest records one outbound provider API call.
func RecordProviderRequest(provider, operation string, status int) {
	providerRequestsTotal.WithLabelValues(provider, operation, strconv.Itoa(status)).Inc()
}

// RecordCleanup records one cleanup sweep.
func RecordCleanup(outcome string) {
	cleanupRunsTotal.WithLabelValues(outcome).Inc()
}
