// ABOUTME: Custom error types for the syndication core
// ABOUTME: Separates contract violations (surfaced) from content problems (absorbed or reported as format errors)

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// InvalidArgumentError reports a nil or missing required input to a public entry point.
// It is always returned to the caller and never swallowed.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

// Error implements the error interface
func (e *InvalidArgumentError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("invalid argument '%s': must not be nil", e.Argument)
	}
	return fmt.Sprintf("invalid argument '%s': %s", e.Argument, e.Message)
}

// FormatError is returned by direct value-conversion APIs when the input is malformed
type FormatError struct {
	Value  string
	Reason string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed value %q: %s", e.Value, e.Reason)
}

// UnsupportedFormatError reports a document whose syndication format cannot be loaded
type UnsupportedFormatError struct {
	Format string
}

// Error implements the error interface
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported syndication format: %s", e.Format)
}

// NewInvalidArgument creates an InvalidArgumentError for a nil argument
func NewInvalidArgument(argument string) error {
	return &InvalidArgumentError{Argument: argument}
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsInvalidArgument checks if an error is an InvalidArgumentError
func IsInvalidArgument(err error) bool {
	var argErr *InvalidArgumentError
	return errors.As(err, &argErr)
}

// IsFormat checks if an error is a FormatError
func IsFormat(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// IsUnsupportedFormat checks if an error is an UnsupportedFormatError
func IsUnsupportedFormat(err error) bool {
	var formatErr *UnsupportedFormatError
	return errors.As(err, &formatErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
