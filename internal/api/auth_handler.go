package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/phrazzld/taskmanager-api/internal/validation"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userStore    store.UserStore
	tokenService auth.TokenService
	hasher       auth.PasswordHasher
	logger       *slog.Logger

	decoyOnce   sync.Once
	decoyDigest string
}

// decoyPassword is hashed once and verified against when a login names an
// unknown email, so that path costs one hash comparison like a wrong password.
const decoyPassword = "decoy-password-for-unknown-accounts"

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	tokenService auth.TokenService,
	hasher auth.PasswordHasher,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore:    userStore,
		tokenService: tokenService,
		hasher:       hasher,
		logger:       log.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in validation.CredentialsInput
	if !decodeBody(w, r, &in) {
		return
	}

	reg, err := validation.ValidateRegistration(in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	digest, err := h.hasher.Hash(r.Context(), reg.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userStore.Create(r.Context(), &domain.User{
		Email:        reg.Email,
		PasswordHash: digest,
		CreatedAt:    reg.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgEmailExists, err)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		Success: true,
		Message: "User registered successfully",
		User:    user.Public(),
	})
}

// Login handles POST /api/auth/login. An unknown email and a wrong password
// produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in validation.CredentialsInput
	if !decodeBody(w, r, &in) {
		return
	}

	creds, err := validation.ValidateLogin(in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), creds.Email)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var digest string
	if user != nil {
		digest = user.PasswordHash
	} else {
		digest = h.decoy(r.Context())
	}
	if !h.hasher.Verify(creds.Password, digest) || user == nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidCredentials, nil,
			shared.WithElevatedLogLevel())
		return
	}

	token, expiresAt, err := h.tokenService.Issue(r.Context(), user.ID, user.Email)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	})
}

// decoy returns the digest compared against when no account matches the
// login email. A failed hash leaves it empty, which never verifies.
func (h *AuthHandler) decoy(ctx context.Context) string {
	h.decoyOnce.Do(func() {
		digest, err := h.hasher.Hash(context.WithoutCancel(ctx), decoyPassword)
		if err != nil {
			logger.FromContextOrDefault(ctx, h.logger).Error("failed to hash decoy password",
				slog.String("error", err.Error()))
			return
		}
		h.decoyDigest = digest
	})
	return h.decoyDigest
}
