package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrInvalidInput indicates a value the validator could not inspect
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotPersisted indicates that an operation needs an entity with an assigned identity
	ErrNotPersisted = errors.New("entity has no identity")
)

// Storage errors. Persistence adapters translate driver errors into these
// so callers can tell an unreachable datastore from a rejected statement.
var (
	ErrConnectionFailure   = errors.New("database connection failure")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotNullViolation    = errors.New("null value not allowed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNoRowsAffected      = errors.New("no rows affected")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
