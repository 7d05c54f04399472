// Package config reads typed settings from environment variables.
//
// Every getter falls back to its default when the variable is unset or empty.
// Unparseable values also fall back, with a warning logged through slog so a
// typo in a deployment does not silently change behavior.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable's value, or defaultValue when it is unset
// or empty.
func GetEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt parses the variable as a base-10 integer. Surrounding whitespace
// is ignored.
//
//	maxOpen := GetEnvInt("DB_MAX_OPEN_CONNS", 25)
func GetEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		warnFallback(key, raw, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvBool parses the variable with strconv.ParseBool ("1", "t", "true",
// "0", "f", "false" and their upper-case forms).
func GetEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		warnFallback(key, raw, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration parses the variable with time.ParseDuration ("500ms", "5s",
// "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		warnFallback(key, raw, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

func warnFallback(key, raw, def string, err error) {
	slog.Warn("invalid environment value, using default",
		slog.String("key", key),
		slog.String("value", raw),
		slog.String("default", def),
		slog.Any("error", err))
}
