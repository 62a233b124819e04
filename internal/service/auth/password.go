package auth

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost is both the default and the minimum bcrypt work factor.
const DefaultCost = bcrypt.DefaultCost

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way digest of plaintext.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. It never errors; a
	// malformed digest simply does not match.
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. Hash computations are
// CPU bound, so at most GOMAXPROCS of them run at once.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a BcryptHasher with the given work factor, raised
// to DefaultCost when lower.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < DefaultCost {
		cost = DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Cost returns the bcrypt work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements PasswordHasher. It waits for a hashing slot and gives up
// when ctx is done.
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}
	defer h.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}
	return string(digest), nil
}

// Verify implements PasswordHasher.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
