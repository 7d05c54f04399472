package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"articles/internal/observability/metrics"
	"articles/internal/observability/tracing"
	"articles/internal/resilience/circuitbreaker"
)

// DefaultStatementTimeout bounds an operation when no timeout is configured.
const DefaultStatementTimeout = 5 * time.Second

// Gateway hands each repository operation its own connection and releases it
// on every exit path. Acquisition goes through a circuit breaker so an
// unreachable datastore fails fast, and every operation is timed, traced
// and counted.
type Gateway struct {
	db      *sql.DB
	breaker *circuitbreaker.DBCircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithStatementTimeout sets the per-operation deadline. Non-positive values are ignored.
func WithStatementTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithCircuitBreakerConfig replaces the default breaker settings.
func WithCircuitBreakerConfig(cfg circuitbreaker.Config) Option {
	return func(g *Gateway) {
		g.breaker = circuitbreaker.NewDBCircuitBreakerWithConfig(g.db, cfg)
	}
}

// WithLogger sets the logger used for release failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway wraps an open database handle.
func NewGateway(db *sql.DB, opts ...Option) *Gateway {
	g := &Gateway{
		db:      db,
		breaker: circuitbreaker.NewDBCircuitBreaker(db),
		timeout: DefaultStatementTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DB returns the underlying handle.
func (g *Gateway) DB() *sql.DB {
	return g.db
}

// Conn opens a connection scoped to one operation. The caller must Release it.
func (g *Gateway) Conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := g.breaker.Conn(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	return conn, nil
}

// Release returns the connection to the pool.
func (g *Gateway) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		g.logger.Warn("failed to release connection", slog.Any("error", err))
	}
	stats := g.db.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
}

// Do runs fn on a fresh connection under the statement timeout. The
// connection is released before Do returns, and a failure is returned
// classified (see Classify).
func (g *Gateway) Do(ctx context.Context, op string, fn func(ctx context.Context, conn *sql.Conn) error) (err error) {
	ctx, span := tracing.StartSpan(ctx, "db."+op, attribute.String("db.operation", op))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(op, time.Since(start))
		if err != nil {
			metrics.RecordDBQueryError(op, Kind(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	conn, err := g.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%s: acquire connection: %w", op, err)
	}
	defer g.Release(conn)

	return Classify(fn(ctx, conn))
}

// BreakerOpen reports whether the circuit breaker is rejecting connections.
func (g *Gateway) BreakerOpen() bool {
	return g.breaker.IsOpen()
}
