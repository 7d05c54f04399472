// Package tracing provides OpenTelemetry tracing integration.
//
// Every storage gateway operation runs inside a span named "db.<operation>".
// The CLI installs an SDK provider with InitTracer; library code only ever
// talks to the global provider through GetTracer and StartSpan.
//
// Example usage:
//
//	shutdown := tracing.InitTracer()
//	defer func() { _ = shutdown(context.Background()) }()
//
//	ctx, span := tracing.StartSpan(ctx, "report")
//	defer span.End()
package tracing
