package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles/internal/domain/entity"
)

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify(nil))
	assert.Equal(t, "", Kind(nil))
}

func TestClassify_Postgres(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		sentinel error
		kind     string
	}{
		{name: "foreign key", code: "23503", sentinel: entity.ErrForeignKeyViolation, kind: KindForeignKey},
		{name: "not null", code: "23502", sentinel: entity.ErrNotNullViolation, kind: KindNotNull},
		{name: "unique", code: "23505", sentinel: entity.ErrConstraintViolation, kind: KindConstraint},
		{name: "connection failure", code: "08006", sentinel: entity.ErrConnectionFailure, kind: KindConnection},
		{name: "admin shutdown", code: "57P01", sentinel: entity.ErrConnectionFailure, kind: KindConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, Message: tt.name}
			err := Classify(fmt.Errorf("Create: %w", pgErr))

			assert.ErrorIs(t, err, tt.sentinel)
			var target *pgconn.PgError
			assert.True(t, errors.As(err, &target), "driver error must stay in the chain")
			assert.Equal(t, tt.kind, Kind(err))
		})
	}
}

func TestClassify_UnknownPostgresCodeUnchanged(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42601"}
	err := Classify(pgErr)
	assert.Same(t, pgErr, err)
	assert.Equal(t, KindOther, Kind(err))
}

func TestClassify_ConnectionErrors(t *testing.T) {
	for _, src := range []error{gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests, driver.ErrBadConn, sql.ErrConnDone} {
		err := Classify(src)
		assert.ErrorIs(t, err, entity.ErrConnectionFailure, src.Error())
		assert.ErrorIs(t, err, src)
	}
}

func TestClassify_AlreadyClassified(t *testing.T) {
	err := Classify(Classify(driver.ErrBadConn))
	assert.Equal(t, fmt.Sprintf("%v: %v", entity.ErrConnectionFailure, driver.ErrBadConn), err.Error())
}

func TestKind_Timeout(t *testing.T) {
	assert.Equal(t, KindTimeout, Kind(fmt.Errorf("List: %w", context.DeadlineExceeded)))
}

func TestClassify_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DialectSQLite, ":memory:", DefaultConnectionConfig())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, MigrateUp(ctx, db, DialectSQLite))

	_, err = db.ExecContext(ctx,
		`INSERT INTO articles (title, content, author_id, magazine_id) VALUES ('t', '', 99, 99)`)
	require.Error(t, err)
	err = Classify(err)
	assert.ErrorIs(t, err, entity.ErrForeignKeyViolation)
	assert.Equal(t, KindForeignKey, Kind(err))

	_, err = db.ExecContext(ctx, `INSERT INTO authors (name) VALUES (NULL)`)
	require.Error(t, err)
	err = Classify(err)
	assert.ErrorIs(t, err, entity.ErrNotNullViolation)
	assert.Equal(t, KindNotNull, Kind(err))
}
