package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"articles/internal/domain/entity"
)

// Error kinds used as the "kind" label of db_query_errors_total.
const (
	KindConnection = "connection"
	KindForeignKey = "foreign_key"
	KindNotNull    = "not_null"
	KindConstraint = "constraint"
	KindTimeout    = "timeout"
	KindOther      = "other"
)

// Classify wraps a driver error with the matching domain sentinel so callers
// can use errors.Is without knowing the backend. The original error stays in
// the chain. Errors that match no kind are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	sentinel := sentinelFor(err)
	if sentinel == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Kind reports the metric label for an error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}

	switch sentinelFor(err) {
	case entity.ErrConnectionFailure:
		return KindConnection
	case entity.ErrForeignKeyViolation:
		return KindForeignKey
	case entity.ErrNotNullViolation:
		return KindNotNull
	case entity.ErrConstraintViolation:
		return KindConstraint
	default:
		return KindOther
	}
}

func sentinelFor(err error) error {
	for _, known := range []error{
		entity.ErrConnectionFailure,
		entity.ErrForeignKeyViolation,
		entity.ErrNotNullViolation,
		entity.ErrConstraintViolation,
	} {
		if errors.Is(err, known) {
			return known
		}
	}

	switch {
	case errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return entity.ErrConnectionFailure
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgSentinel(pgErr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return entity.ErrConnectionFailure
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return sqliteSentinel(liteErr.Code(), liteErr.Error())
	}

	return nil
}

// pgSentinel maps a SQLSTATE code.
func pgSentinel(code string) error {
	switch {
	case code == "23503":
		return entity.ErrForeignKeyViolation
	case code == "23502":
		return entity.ErrNotNullViolation
	case strings.HasPrefix(code, "23"):
		return entity.ErrConstraintViolation
	case strings.HasPrefix(code, "08"), code == "57P01", code == "57P03":
		return entity.ErrConnectionFailure
	default:
		return nil
	}
}

// sqliteSentinel maps a (possibly extended) SQLite result code. The primary
// code lives in the low byte.
func sqliteSentinel(code int, msg string) error {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return entity.ErrForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return entity.ErrNotNullViolation
	}

	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return entity.ErrForeignKeyViolation
		case strings.Contains(msg, "NOT NULL"):
			return entity.ErrNotNullViolation
		}
		return entity.ErrConstraintViolation
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_IOERR:
		return entity.ErrConnectionFailure
	default:
		return nil
	}
}
