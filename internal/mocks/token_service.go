package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueFn allows test cases to mock the Issue behavior
	IssueFn func(ctx context.Context, userID uuid.UUID, email string) (string, time.Time, error)

	// VerifyFn allows test cases to mock the Verify behavior
	VerifyFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token     string
	ExpiresAt time.Time
	Err       error
	VerifyErr error
	Claims    *auth.Claims
}

var _ auth.TokenService = (*MockTokenService)(nil)

// Issue implements the auth.TokenService interface
func (m *MockTokenService) Issue(ctx context.Context, userID uuid.UUID, email string) (string, time.Time, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID, email)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// Verify implements the auth.TokenService interface
func (m *MockTokenService) Verify(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, tokenString)
	}
	return m.Claims, m.VerifyErr
}
