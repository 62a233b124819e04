package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. Methods without a
// function field return Err.
type MockTaskStore struct {
	CreateFn        func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByOwnerFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListFn          func(ctx context.Context) ([]*domain.Task, error)
	UpdateFn        func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	DeleteByOwnerFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	CountFn         func(ctx context.Context) (int, error)
	CountByOwnerFn  func(ctx context.Context, userID uuid.UUID) (int, error)

	Err error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil, m.Err
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, m.Err
}

// ListByOwner implements store.TaskStore
func (m *MockTaskStore) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, userID)
	}
	return nil, m.Err
}

// List implements store.TaskStore
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, m.Err
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, m.Err
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil, m.Err
}

// DeleteByOwner implements store.TaskStore
func (m *MockTaskStore) DeleteByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.DeleteByOwnerFn != nil {
		return m.DeleteByOwnerFn(ctx, userID)
	}
	return nil, m.Err
}

// Count implements store.TaskStore
func (m *MockTaskStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, m.Err
}

// CountByOwner implements store.TaskStore
func (m *MockTaskStore) CountByOwner(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountByOwnerFn != nil {
		return m.CountByOwnerFn(ctx, userID)
	}
	return 0, m.Err
}
