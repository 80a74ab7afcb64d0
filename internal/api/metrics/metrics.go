// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels and help
// strings. Metrics are registered with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served HTTP requests.
// Labels:
//   - method: HTTP verb
//   - route: the registered Echo route (e.g. "/graphql"), never the raw URL
//   - code: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures request latency from first byte to response.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── GraphQL metrics ───────────────────────────────────────────────────────────

// GraphQLOperationsTotal counts executed GraphQL documents.
// Labels:
//   - operation: operationName sent by the client, "anonymous" when empty
//   - result: "ok" or "error" (any entry in the errors array)
var GraphQLOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_operations_total",
		Help:      "Total number of GraphQL operations executed.",
	},
	[]string{"operation", "result"},
)

// GraphQLErrorsTotal counts resolver errors by their extensions.code.
var GraphQLErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_errors_total",
		Help:      "Total number of GraphQL resolver errors, by error code.",
	},
	[]string{"code"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests whose bearer token was rejected.
// Label:
//   - reason: "invalid_token" or "subject_not_found"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected bearer tokens.",
	},
	[]string{"reason"},
)

// SignupsTotal counts signup attempts. Label result: "ok" or "rejected".
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts. Label result: "ok" or "failed".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts.",
	},
	[]string{"result"},
)
