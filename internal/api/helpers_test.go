package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/mocks"
	"github.com/phrazzld/taskmanager-api/internal/platform/memory"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

const testSecret = "handler-test-secret"

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testServer wires the handlers the way the server does, over in-memory
// stores and a real HS256 token service.
type testServer struct {
	t      *testing.T
	srv    *httptest.Server
	users  store.UserStore
	tasks  store.TaskStore
	tokens auth.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := memory.NewUserStore(quietLogger)
	tasks := memory.NewTaskStore(quietLogger)
	return newTestServerWithStores(t, users, tasks)
}

func newTestServerWithStores(t *testing.T, users store.UserStore, tasks store.TaskStore) *testServer {
	t.Helper()

	tokens := auth.NewTokenService(config.AuthConfig{JWTSecret: testSecret}, quietLogger)
	authMW := middleware.NewAuthMiddleware(tokens)
	authHandler := NewAuthHandler(users, tokens, &mocks.MockPasswordHasher{}, quietLogger)
	taskHandler := NewTaskHandler(tasks, quietLogger)
	debugHandler := NewDebugHandler(users, tasks, quietLogger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})

		r.Route("/debug", func(r chi.Router) {
			r.Get("/users", debugHandler.Users)
			r.Get("/tasks", debugHandler.Tasks)
			r.With(authMW.OptionalAuthenticate).Get("/database-stats", debugHandler.DatabaseStats)
			r.Get("/user/{userId}/tasks", debugHandler.UserTasks)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{t: t, srv: srv, users: users, tasks: tasks, tokens: tokens}
}

// do sends a request with an optional JSON body and bearer token and decodes
// the response body into a generic map.
func (s *testServer) do(method, path string, body interface{}, token string) (int, map[string]interface{}) {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]interface{}
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// registerAndLogin creates a user through the API and returns its id and token.
func (s *testServer) registerAndLogin(email string) (uuid.UUID, string) {
	s.t.Helper()

	creds := map[string]string{"email": email, "password": "secret123"}
	status, body := s.do(http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(s.t, http.StatusCreated, status, body)

	status, body = s.do(http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(s.t, http.StatusOK, status, body)

	user := body["user"].(map[string]interface{})
	id, err := uuid.Parse(user["id"].(string))
	require.NoError(s.t, err)
	return id, body["token"].(string)
}

// createTask creates a task through the API and returns the decoded task.
func (s *testServer) createTask(token string, payload interface{}) map[string]interface{} {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/api/tasks", payload, token)
	require.Equal(s.t, http.StatusCreated, status, body)
	return body["task"].(map[string]interface{})
}

// signToken signs arbitrary claims with the test secret.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// expiredToken returns a correctly signed token whose 24h window has passed.
func expiredToken(t *testing.T, userID uuid.UUID) string {
	issued := time.Now().Add(-auth.TokenLifetime - time.Minute)
	return signToken(t, jwt.MapClaims{
		"uid":   userID.String(),
		"email": "late@example.com",
		"iat":   issued.Unix(),
		"exp":   issued.Add(auth.TokenLifetime).Unix(),
	})
}

// jwtExpiry is an exp claim one hour from now.
func jwtExpiry() int64 {
	return time.Now().Add(time.Hour).Unix()
}

func decodeJSON(resp *http.Response, v interface{}) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

// newRecorderRequest builds a request for calling a handler directly.
func newRecorderRequest(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), r
}

func newDomainTask(owner uuid.UUID, title string) *domain.Task {
	return &domain.Task{
		ID:        uuid.New(),
		Title:     title,
		UserID:    owner,
		CreatedAt: time.Now().UTC(),
	}
}
