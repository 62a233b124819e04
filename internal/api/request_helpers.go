package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/validation"
)

// ownerFromRequest returns the authenticated caller's identifier.
// A request that reached a protected handler without claims is treated as
// unauthenticated; a malformed identifier in valid claims is a validation
// failure.
func ownerFromRequest(r *http.Request) (uuid.UUID, error) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		return uuid.Nil, err
	}
	return validation.ParseOwnerID(claims.UserID)
}

func claimsFromRequest(r *http.Request) (*auth.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return nil, domain.NewUnauthenticatedError(middleware.MsgAccessTokenRequired, nil)
	}
	return claims, nil
}

// getPathUUID parses the named chi path parameter as a UUID. Any failure is
// reported as a validation error carrying message.
func getPathUUID(r *http.Request, paramName, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError(message)
	}
	return id, nil
}

// decodeBody decodes the JSON request body into v and writes a 400 response
// when it is malformed. It reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		shared.RespondWithErrorAndLog(w, r, status, MsgInvalidRequestBody, err)
		return false
	}
	return true
}
