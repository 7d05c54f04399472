// Package circuitbreaker trips on repeated failures to reach the datastore.
// It is a thin layer over github.com/sony/gobreaker that adds a failure-ratio
// trip rule, state-change logging and a state gauge.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"articles/internal/observability/metrics"
)

// Config holds the breaker settings.
type Config struct {
	// Name labels log lines and the circuit_breaker_state gauge.
	Name string

	// MaxRequests admitted while half-open.
	MaxRequests uint32

	// Interval after which closed-state counts reset. Zero never resets.
	Interval time.Duration

	// Timeout spent open before probing again.
	Timeout time.Duration

	// FailureThreshold is the failure ratio (0..1] that trips the breaker.
	FailureThreshold float64

	// MinRequests observed before the ratio is considered.
	MinRequests uint32
}

// CircuitBreaker wraps gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New builds a breaker that opens once at least MinRequests calls were seen
// and the failure ratio reaches FailureThreshold.
func New(cfg Config) *CircuitBreaker {
	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: readyToTrip(cfg.MinRequests, cfg.FailureThreshold),
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.SetCircuitBreakerState(name, int(to))
				slog.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		}),
	}
}

func readyToTrip(minRequests uint32, threshold float64) func(gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests == 0 || counts.Requests < minRequests {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) >= threshold
	}
}

// Execute runs fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
