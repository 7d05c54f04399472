package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags of an Author, Magazine or Article.
// The first failing field is returned as a *ValidationError; any other
// failure of the validator itself is wrapped in ErrInvalidInput.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
