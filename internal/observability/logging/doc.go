// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Run ID propagation for CLI invocations
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "articles/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New(os.Stderr, "json")
//	    logger.Info("catalog started", slog.String("driver", "sqlite"))
//	}
package logging
