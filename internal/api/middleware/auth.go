package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/redact"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// Authentication failure messages.
const (
	MsgAccessTokenRequired = "Access token required"
	MsgInvalidToken        = "Invalid or expired token"
)

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate verifies the bearer token and attaches its claims to the
// request context. It does not check resource ownership.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgAccessTokenRequired)
			return
		}

		claims, err := m.tokenService.Verify(r.Context(), token)
		if err != nil {
			logger.FromContext(r.Context()).Debug("bearer token rejected",
				slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// OptionalAuthenticate attaches claims when the request carries a valid
// bearer token and otherwise proceeds anonymously. It never rejects.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := m.tokenService.Verify(r.Context(), token); err == nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, shared.ClaimsContextKey, claims)
}

// ClaimsFromContext returns the verified claims attached by Authenticate or
// OptionalAuthenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(shared.ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// bearerScheme is matched case-sensitively, including the separating space.
const bearerScheme = "Bearer "

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" for a missing header or any other scheme.
func bearerToken(r *http.Request) string {
	if !strings.HasPrefix(r.Header.Get("Authorization"), bearerScheme) {
		return ""
	}
	return strings.TrimSpace(jwtauth.TokenFromHeader(r))
}
