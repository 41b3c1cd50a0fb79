package model

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ErrFilamentNotFound is returned when an operation references an unknown filament id.
var ErrFilamentNotFound = errors.New("filament not found")

// ValidationError reports a rejected user value. Field names the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// QuoteComputationError is the ValidationError raised by the pricing engine
// for a missing filament or a non-positive duration or mass.
type QuoteComputationError struct {
	ValidationError
}

// NewQuoteComputationError builds a QuoteComputationError for the given field.
func NewQuoteComputationError(field, message string) *QuoteComputationError {
	return &QuoteComputationError{ValidationError{Field: field, Message: message}}
}

func (e *QuoteComputationError) Error() string {
	return e.Message
}

// Unwrap exposes the embedded ValidationError so errors.As finds it.
func (e *QuoteComputationError) Unwrap() error {
	return &e.ValidationError
}

// ConfigLoadError wraps a failure to read or decode the configuration file.
// Callers recover from it by falling back to defaults.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("failed to load configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// ConfigSaveError wraps a failure to persist the configuration file.
type ConfigSaveError struct {
	Path string
	Err  error
}

func (e *ConfigSaveError) Error() string {
	return fmt.Sprintf("failed to save configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigSaveError) Unwrap() error { return e.Err }
