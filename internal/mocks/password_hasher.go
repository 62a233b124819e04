package mocks

import (
	"context"

	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing. Its default
// digest is "hashed:" + plaintext, and Verify accepts exactly that.
type MockPasswordHasher struct {
	HashFn   func(ctx context.Context, plaintext string) (string, error)
	VerifyFn func(plaintext, digest string) bool

	// HashErr is returned by Hash when HashFn is nil.
	HashErr error

	// VerifyCallCount tracks how many times Verify was called
	VerifyCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(ctx, plaintext)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + plaintext, nil
}

// Verify implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Verify(plaintext, digest string) bool {
	m.VerifyCallCount++
	if m.VerifyFn != nil {
		return m.VerifyFn(plaintext, digest)
	}
	return digest == "hashed:"+plaintext
}
