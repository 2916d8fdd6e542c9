// Package metrics provides the centralized Prometheus registry for the
// GitHub client. The metrics themselves are defined next to the code that
// records them (pkg/github) to avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the GitHub client.
// All metrics are automatically registered via promauto in pkg/github.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/github):
//   - github_requests_total{endpoint, status} (Counter): Total requests by
//     endpoint label and HTTP status ("network_error" when no response)
//   - github_request_duration_seconds{endpoint} (Histogram): Request
//     duration by endpoint label
//   - github_errors_total{kind} (Counter): Errors by kind
//     (config, encode, transport, graphql, protocol)
//
// Endpoint labels are templates ("/users/{login}", "/graphql"), not
// concrete URLs, to keep cardinality bounded.
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(github_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(github_request_duration_seconds_bucket[5m]))
//
//   # GraphQL Error Share
//   rate(github_errors_total{kind="graphql"}[5m]) /
//   rate(github_requests_total{endpoint="/graphql"}[5m])
