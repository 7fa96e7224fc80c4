// Package metrics provides the centralized Prometheus metrics registry for
// the fetch engine. All metrics are defined in their respective packages
// (fetch, cache, ratelimit) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the fetch engine.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Engine Metrics (pkg/fetch):
//   - fetch_requests_total{result} (Counter): Requests by result (success, failure, cache_hit, invalid)
//   - fetch_duration_seconds (Histogram): Duration of whole retried fetch sequences
//   - fetch_errors_total{kind} (Counter): Terminal failures by error kind
//   - fetch_inflight (Gauge): Fetches currently in flight
//
// Retry Metrics (pkg/fetch):
//   - fetch_retries_total{kind} (Counter): Retry attempts by error kind
//   - fetch_retry_backoff_seconds{kind} (Histogram): Backoff duration by error kind
//   - fetch_retry_exhausted_total{kind} (Counter): Fetches that exhausted the retry budget
//
// Cache Metrics (pkg/cache):
//   - fetch_cache_hits_total{backend} (Counter): Cache hits by backend (memory, redis)
//   - fetch_cache_misses_total{backend} (Counter): Cache misses by backend
//   - fetch_cache_errors_total{operation} (Counter): Cache operation errors
//
// Rate Limit Metrics (pkg/ratelimit):
//   - fetch_rate_permit_wait_seconds (Histogram): Time spent waiting for a rate permit
//   - fetch_rate_permits_granted_total (Counter): Rate permits granted
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(fetch_cache_hits_total[5m])) /
//   (sum(rate(fetch_cache_hits_total[5m])) + sum(rate(fetch_cache_misses_total[5m])))
//
//   # Fetch Error Rate
//   rate(fetch_errors_total[5m])
//
//   # P95 Fetch Latency
//   histogram_quantile(0.95, rate(fetch_duration_seconds_bucket[5m]))
//
//   # Retry Exhaustion Rate
//   rate(fetch_retry_exhausted_total[5m]) / rate(fetch_requests_total[5m])
