package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task, assigning its ID. CreatedAt is kept when set.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID retrieves a task by ID, or nil if none exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner returns the tasks owned by userID in creation order.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// List returns every task in creation order.
	List(ctx context.Context) ([]*domain.Task, error)

	// Update merges patch into the task and returns the result, or nil if the
	// task does not exist. ID, owner and CreatedAt never change.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task and returns it, or nil if it did not exist.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// DeleteByOwner removes every task owned by userID and returns them.
	DeleteByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Count returns the number of tasks.
	Count(ctx context.Context) (int, error)

	// CountByOwner returns the number of tasks owned by userID.
	CountByOwner(ctx context.Context, userID uuid.UUID) (int, error)
}
