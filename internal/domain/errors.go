package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownCurrency is returned when a currency is not on the allow-list.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrWriteOnce is returned when a caller attempts to overwrite a field
	// that may only be set once after creation (PIN hash, CVV hash,
	// password hash).
	ErrWriteOnce = errors.New("field may only be set once")
)

// ValidationError carries the field that failed validation alongside the
// underlying sentinel so callers can both inspect and report it.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "validation failed for " + e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError wrapping ErrValidation
// unless a more specific sentinel is supplied.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
