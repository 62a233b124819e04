package domain

import (
	"errors"
	"strings"
)

// Error kinds. Every failure the API reports to a client is classified as
// exactly one of these; anything else is an internal error.
var (
	// ErrValidation marks client input that is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated marks a missing, invalid or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks an authenticated caller acting on a resource it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a resource that does not exist.
	ErrNotFound = errors.New("not found")
)

// Error is a classified error carrying a message that is safe to show to clients.
// It unwraps to both its kind and the underlying cause, so errors.Is works
// against either.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewUnauthenticatedError returns an ErrUnauthenticated-kind error.
func NewUnauthenticatedError(message string, cause error) *Error {
	return &Error{Kind: ErrUnauthenticated, Message: message, Err: cause}
}

// NewForbiddenError returns an ErrForbidden-kind error.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// NewNotFoundError returns an ErrNotFound-kind error.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// ValidationError collects every violated rule of a single validation pass.
type ValidationError struct {
	Violations []string
}

// NewValidationError returns a ValidationError for the given violations.
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// Error joins all violations with ", ".
func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// Is reports ValidationError as an ErrValidation kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
