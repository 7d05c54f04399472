// Package main provides the catalog CLI.
// Usage: catalog [-env FILE] <migrate|seed|report|author NAME|magazine NAME|article TITLE>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"articles/internal/config"
	"articles/internal/infra/db"
	"articles/internal/observability/logging"
	"articles/internal/observability/tracing"
	"articles/internal/resilience/circuitbreaker"
)

func main() {
	envFile := flag.String("env", ".env", "Path to a .env file loaded before reading configuration")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := config.LoadCatalogConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(execute(cfg, flag.Args()))
}

// execute runs one command and returns the process exit code, so deferred
// cleanup completes before main exits.
func execute(cfg *config.CatalogConfig, args []string) int {
	ctx := logging.ContextWithRunID(context.Background(), uuid.NewString())
	logger := logging.WithRunID(ctx, logging.New(os.Stderr, cfg.Log.Format))
	slog.SetDefault(logger)
	ctx = logging.WithLogger(ctx, logger)

	if cfg.Tracing {
		shutdown := tracing.InitTracer()
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("failed to shut down tracer provider", slog.Any("error", err))
			}
		}()
	}

	if err := run(ctx, cfg, logger, args); err != nil {
		logger.Error("command failed", slog.String("command", args[0]), slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.CatalogConfig, logger *slog.Logger, args []string) error {
	dialect, err := db.ParseDialect(cfg.Driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(ctx, dialect, cfg.DatabaseURL, db.ConnectionConfig{
		MaxOpenConns:    cfg.Pool.MaxOpenConns,
		MaxIdleConns:    cfg.Pool.MaxIdleConns,
		ConnMaxLifetime: cfg.Pool.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Pool.ConnMaxIdleTime,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	breaker := circuitbreaker.DBConfig()
	breaker.MaxRequests = cfg.CircuitBreaker.MaxRequests
	breaker.Interval = cfg.CircuitBreaker.Interval
	breaker.Timeout = cfg.CircuitBreaker.Timeout
	breaker.MinRequests = cfg.CircuitBreaker.MinRequests

	gw := db.NewGateway(sqlDB,
		db.WithStatementTimeout(cfg.StatementTimeout),
		db.WithCircuitBreakerConfig(breaker),
		db.WithLogger(logger),
	)

	logger.Debug("catalog opened",
		slog.String("dialect", string(dialect)),
		slog.Duration("statement_timeout", cfg.StatementTimeout))

	return newApp(gw, dialect, os.Stdout).run(ctx, args)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage: catalog [-env FILE] <command> [args]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  migrate [-down]        create (or drop) the authors, magazines and articles tables")
	fmt.Fprintln(out, "  seed [-file FILE]      clear all rows and load the sample catalog")
	fmt.Fprintln(out, "  report                 top author, multi-author magazines, article counts")
	fmt.Fprintln(out, "  author NAME            an author's articles and magazines")
	fmt.Fprintln(out, "  magazine NAME          a magazine's titles and contributors")
	fmt.Fprintln(out, "  article TITLE          an article with its author and magazine")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}
