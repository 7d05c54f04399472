// Package config loads the catalog's runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	envcfg "articles/pkg/config"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CatalogConfig holds configuration for the storage gateway and the CLI.
type CatalogConfig struct {
	// Driver selects the SQL dialect and database/sql driver.
	// Values: "sqlite" (modernc.org/sqlite) or "postgres" (pgx).
	// Default: "sqlite"
	Driver string

	// DatabaseURL is the DSN handed to sql.Open.
	// Default: "file:articles.db"
	DatabaseURL string

	// StatementTimeout bounds each repository operation,
	// from connection acquisition to the last scanned row.
	// Default: 5 seconds
	StatementTimeout time.Duration

	// Pool configures the database/sql connection pool.
	Pool PoolConfig

	// CircuitBreaker guards connection acquisition.
	CircuitBreaker CircuitBreakerConfig

	// Log configures the slog handler.
	Log LogConfig

	// Tracing installs the OpenTelemetry SDK provider when true.
	// Default: false
	Tracing bool
}

// PoolConfig mirrors the database/sql pool knobs.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// CircuitBreakerConfig for storage resilience.
type CircuitBreakerConfig struct {
	// MaxRequests in half-open state.
	MaxRequests uint32

	// Interval for clearing failure counts.
	Interval time.Duration

	// Timeout before transitioning from open to half-open.
	Timeout time.Duration

	// MinRequests before the breaker may trip.
	MinRequests uint32
}

// LogConfig selects the log output. The level is read by the logging
// package from LOG_LEVEL.
type LogConfig struct {
	// Format: json or text. Default: "text"
	Format string
}

// LoadCatalogConfig loads catalog configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadCatalogConfig() (*CatalogConfig, error) {
	config := &CatalogConfig{
		Driver:           envcfg.GetEnvString("CATALOG_DRIVER", DriverSQLite),
		DatabaseURL:      envcfg.GetEnvString("DATABASE_URL", "file:articles.db"),
		StatementTimeout: envcfg.GetEnvDuration("CATALOG_STATEMENT_TIMEOUT", 5*time.Second),
		Pool: PoolConfig{
			MaxOpenConns:    envcfg.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envcfg.GetEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: envcfg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests: uint32(envcfg.GetEnvInt("DB_CB_MAX_REQUESTS", 3)),
			Interval:    envcfg.GetEnvDuration("DB_CB_INTERVAL", time.Minute),
			Timeout:     envcfg.GetEnvDuration("DB_CB_TIMEOUT", 30*time.Second),
			MinRequests: uint32(envcfg.GetEnvInt("DB_CB_MIN_REQUESTS", 5)),
		},
		Log: LogConfig{
			Format: envcfg.GetEnvString("LOG_FORMAT", "text"),
		},
		Tracing: envcfg.GetEnvBool("CATALOG_TRACING", false),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog configuration: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration can be used to open the gateway.
func (c *CatalogConfig) Validate() error {
	if c.Driver != DriverSQLite && c.Driver != DriverPostgres {
		return fmt.Errorf("CATALOG_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Driver)
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL cannot be empty")
	}

	if err := envcfg.ValidateDurationRange(c.StatementTimeout, time.Millisecond, 10*time.Minute); err != nil {
		return fmt.Errorf("CATALOG_STATEMENT_TIMEOUT: %w", err)
	}

	if c.Pool.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}

	if c.Pool.MaxIdleConns < 0 || c.Pool.MaxIdleConns > c.Pool.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS")
	}

	if err := envcfg.ValidateNonNegativeDuration(c.Pool.ConnMaxLifetime); err != nil {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}

	if err := envcfg.ValidateNonNegativeDuration(c.Pool.ConnMaxIdleTime); err != nil {
		return fmt.Errorf("DB_CONN_MAX_IDLE_TIME: %w", err)
	}

	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("DB_CB_MAX_REQUESTS must be positive")
	}

	if err := envcfg.ValidateNonNegativeDuration(c.CircuitBreaker.Interval); err != nil {
		return fmt.Errorf("DB_CB_INTERVAL: %w", err)
	}

	if err := envcfg.ValidatePositiveDuration(c.CircuitBreaker.Timeout); err != nil {
		return fmt.Errorf("DB_CB_TIMEOUT: %w", err)
	}

	return nil
}
