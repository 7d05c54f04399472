// Package observability groups the catalog's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog construction, run-id propagation, context loggers
//   - metrics: Prometheus collectors recorded by the storage gateway
//   - tracing: OpenTelemetry tracer and SDK provider setup
package observability
