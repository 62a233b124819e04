package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
)

// DevelopmentSecret signs tokens when no secret is configured. It is public
// knowledge, so it must never be relied on outside local development.
const DevelopmentSecret = "your-secret-key"

// hmacTokenService is an implementation of TokenService using HMAC-SHA256.
type hmacTokenService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // Injectable for testing
	logger     *slog.Logger
}

type jwtCustomClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a token service signing with cfg.JWTSecret, or with
// DevelopmentSecret when that is empty.
func NewTokenService(cfg config.AuthConfig, log *slog.Logger) TokenService {
	return newHMACTokenService(SigningSecret(cfg), time.Now, log)
}

// SigningSecret returns the secret a token service built from cfg signs with.
func SigningSecret(cfg config.AuthConfig) string {
	if cfg.JWTSecret == "" {
		return DevelopmentSecret
	}
	return cfg.JWTSecret
}

// UsesDevelopmentSecret reports whether cfg falls back to DevelopmentSecret.
func UsesDevelopmentSecret(cfg config.AuthConfig) bool {
	return SigningSecret(cfg) == DevelopmentSecret
}

func newHMACTokenService(secret string, timeFunc func() time.Time, log *slog.Logger) *hmacTokenService {
	if log == nil {
		log = slog.Default()
	}
	return &hmacTokenService{
		signingKey: []byte(secret),
		lifetime:   TokenLifetime,
		timeFunc:   timeFunc,
		logger:     log.With(slog.String("component", "token_service")),
	}
}

// Issue creates a signed HS256 token with user claims.
func (s *hmacTokenService) Issue(
	ctx context.Context,
	userID uuid.UUID,
	email string,
) (string, time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()
	expiresAt := now.Add(s.lifetime)

	claims := jwtCustomClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", time.Time{}, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify validates a token and returns its claims. No clock leeway is applied.
func (s *hmacTokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token verification failed: expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token verification failed: malformed", slog.String("error", err.Error()))
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token verification failed: invalid signature")
		default:
			log.Debug("token verification failed",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		log.Debug("token verification failed: invalid claims")
		return nil, ErrInvalidToken
	}

	out := &Claims{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Subject: claims.Subject,
		ID:      claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
