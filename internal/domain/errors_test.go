package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("Valid email is required", "Password is required")

	assert.Equal(t, "Valid email is required, Password is required", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("register: %w", err)
	var verr *ValidationError
	assert.True(t, errors.As(wrapped, &verr))
	assert.Len(t, verr.Violations, 2)
	assert.True(t, errors.Is(wrapped, ErrValidation))
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("signature is invalid")

	tests := []struct {
		name    string
		err     *Error
		kind    error
		message string
	}{
		{"unauthenticated", NewUnauthenticatedError("Invalid or expired token", cause), ErrUnauthenticated, "Invalid or expired token: signature is invalid"},
		{"forbidden", NewForbiddenError("Access denied"), ErrForbidden, "Access denied"},
		{"not found", NewNotFoundError("Task not found"), ErrNotFound, "Task not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind))
			assert.Equal(t, tt.message, tt.err.Error())
			assert.False(t, errors.Is(tt.err, ErrValidation))
		})
	}

	assert.True(t, errors.Is(NewUnauthenticatedError("x", cause), cause), "cause should be reachable")
}
