package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")

	// ErrInvalidPeriod marks bad or missing timeframe bounds. User-correctable.
	ErrInvalidPeriod = errors.New("invalid period input")

	// ErrEmptyPeriod means the requested window contains no entries.
	// Surfaced to the client as a distinct, non-retryable condition.
	ErrEmptyPeriod = errors.New("no entries found for this period")

	// ErrProvider marks an upstream transport or service failure (STT or
	// analysis). The core does not retry; the caller may retry the request.
	ErrProvider = errors.New("provider failure")

	// ErrInvalidProviderResponse marks malformed or incomplete structured
	// output from a live provider. Never coerced into a partial insight.
	ErrInvalidProviderResponse = errors.New("invalid provider response")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
