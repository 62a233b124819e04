package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenLifetime is the fixed validity window of an issued token.
const TokenLifetime = 24 * time.Hour

// TokenService defines operations for issuing and verifying bearer tokens.
type TokenService interface {
	// Issue creates a signed token for the user and returns it together with
	// its expiry time.
	Issue(ctx context.Context, userID uuid.UUID, email string) (string, time.Time, error)

	// Verify checks the token signature and expiry and returns its claims.
	// Any failure matches ErrInvalidToken.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// UserID is the identifier of the user the token was issued for, exactly
	// as it appears in the token.
	UserID string `json:"uid"`

	// Email is the address the user held when the token was issued.
	Email string `json:"email"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti,omitempty"`
}
