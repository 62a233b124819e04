package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// Client-facing messages that are not produced by the validation package.
const (
	MsgInternalError      = "Internal server error"
	MsgInvalidRequestBody = "Invalid request body"
	MsgInvalidTaskID      = "Invalid task ID"
	MsgEmailExists        = "User with this email already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidToken       = "Invalid or expired token"
	MsgUserNotFound       = "User not found"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// their kind. Anything unclassified is an internal server error.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
// Internal details never leave this function.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternalError
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}

	switch {
	case errors.Is(err, store.ErrEmailExists):
		return MsgEmailExists
	case errors.Is(err, auth.ErrInvalidToken):
		return MsgInvalidToken
	default:
		return MsgInternalError
	}
}

// HandleAPIError writes the failure envelope for err and logs it.
// Server errors are logged at ERROR with the cause redacted, access
// denials at WARN.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
