// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the catalog metrics:
//   - Database query metrics (duration, errors per operation)
//   - Connection pool gauges
//   - Table size gauges (authors, magazines, articles)
//
// All metrics are automatically registered with the Prometheus default registry.
//
// Example usage:
//
//	import "articles/internal/observability/metrics"
//
//	start := time.Now()
//	// ... run the query ...
//	metrics.RecordDBQuery("author_get", time.Since(start))
package metrics
