package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user, assigning its ID. Email uniqueness is checked
	// as part of the write. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID retrieves a user by ID, or nil if none exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by exact (already normalized) email, or nil.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns every user in creation order.
	List(ctx context.Context) ([]*domain.User, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int, error)
}
