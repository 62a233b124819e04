package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, signed with the wrong
	// key or algorithm, or otherwise unusable. Every verification failure
	// matches it.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired. It wraps ErrInvalidToken
	// so callers that do not care about the distinction can ignore it.
	ErrExpiredToken = fmt.Errorf("authentication token has expired: %w", ErrInvalidToken)

	// ErrHashingFailed indicates a password could not be hashed.
	ErrHashingFailed = errors.New("password hashing failed")
)
