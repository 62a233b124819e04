package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/phrazzld/taskmanager-api/internal/mocks"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServiceAccepting(valid string, claims *auth.Claims) *mocks.MockTokenService {
	return &mocks.MockTokenService{
		VerifyFn: func(_ context.Context, token string) (*auth.Claims, error) {
			if token == valid {
				return claims, nil
			}
			return nil, auth.ErrInvalidToken
		},
	}
}

func TestAuthenticate(t *testing.T) {
	claims := &auth.Claims{UserID: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", Email: "alice@example.com"}
	tokens := tokenServiceAccepting("good-token", claims)
	authMW := middleware.NewAuthMiddleware(tokens)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgAccessTokenRequired},
		{name: "wrong scheme", header: "Token abc", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgAccessTokenRequired},
		{name: "scheme without token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgAccessTokenRequired},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgAccessTokenRequired},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgAccessTokenRequired},
		{name: "uppercase scheme", header: "BEARER good-token", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgAccessTokenRequired},
		{name: "scheme without separator", header: "Bearergood-token", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgAccessTokenRequired},
		{name: "invalid token", header: "Bearer bad-token", wantStatus: http.StatusUnauthorized, wantMessage: middleware.MsgInvalidToken},
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *auth.Claims
			handler := authMW.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = middleware.ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Same(t, claims, seen)
				return
			}
			assert.Nil(t, seen, "handler must not run")

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.wantMessage, resp["message"])
		})
	}
}

func TestAuthenticateExpiredTokenIsUniform(t *testing.T) {
	tokens := &mocks.MockTokenService{VerifyErr: auth.ErrExpiredToken}
	handler := middleware.NewAuthMiddleware(tokens).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), middleware.MsgInvalidToken)
}

func TestOptionalAuthenticate(t *testing.T) {
	claims := &auth.Claims{UserID: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"}
	authMW := middleware.NewAuthMiddleware(tokenServiceAccepting("good-token", claims))

	tests := []struct {
		name       string
		header     string
		wantClaims bool
	}{
		{name: "anonymous", header: ""},
		{name: "wrong scheme", header: "Token abc"},
		{name: "invalid token", header: "Bearer bad-token"},
		{name: "valid token", header: "Bearer good-token", wantClaims: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var got *auth.Claims
			var ok bool
			handler := authMW.OptionalAuthenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok = middleware.ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/debug/database-stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.True(t, called, "optional authentication never rejects")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantClaims, ok)
			if tt.wantClaims {
				assert.Same(t, claims, got)
			}
		})
	}
}

func TestClaimsFromContextEmpty(t *testing.T) {
	claims, ok := middleware.ClaimsFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, claims)

	var nilClaims *auth.Claims
	_, ok = middleware.ClaimsFromContext(middleware.WithClaims(context.Background(), nilClaims))
	assert.False(t, ok)
}
