package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// TaskStore implements store.TaskStore in memory.
type TaskStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*domain.Task
	order  []uuid.UUID
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore. A nil logger uses slog.Default().
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		byID:   make(map[uuid.UUID]*domain.Task),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Create implements store.TaskStore. The id is issued under the write lock.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: task has no owner", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task id: %w", err)
	}

	stored := *task
	stored.ID = id
	s.byID[id] = &stored
	s.order = append(s.order, id)

	s.logger.DebugContext(ctx, "task created",
		slog.String("task_id", id.String()),
		slog.String("user_id", stored.UserID.String()))

	return copyTask(&stored), nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyTask(s.byID[id]), nil
}

// ListByOwner implements store.TaskStore.
func (s *TaskStore) ListByOwner(_ context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(t *domain.Task) bool { return t.UserID == userID }), nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(_ context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(*domain.Task) bool { return true }), nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	updated := patch.Apply(*current)
	s.byID[id] = &updated

	s.logger.DebugContext(ctx, "task updated", slog.String("task_id", id.String()))

	return copyTask(&updated), nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(v uuid.UUID) bool { return v == id })

	s.logger.DebugContext(ctx, "task deleted", slog.String("task_id", id.String()))

	return removed, nil
}

// DeleteByOwner implements store.TaskStore.
func (s *TaskStore) DeleteByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.collect(func(t *domain.Task) bool { return t.UserID == userID })
	for _, t := range removed {
		delete(s.byID, t.ID)
	}
	s.order = slices.DeleteFunc(s.order, func(id uuid.UUID) bool {
		_, ok := s.byID[id]
		return !ok
	})

	s.logger.DebugContext(ctx, "tasks deleted for owner",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(removed)))

	return removed, nil
}

// Count implements store.TaskStore.
func (s *TaskStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID), nil
}

// CountByOwner implements store.TaskStore.
func (s *TaskStore) CountByOwner(_ context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, t := range s.byID {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

// collect returns copies of matching tasks in insertion order. Callers hold the lock.
func (s *TaskStore) collect(match func(*domain.Task) bool) []*domain.Task {
	tasks := make([]*domain.Task, 0)
	for _, id := range s.order {
		if t := s.byID[id]; match(t) {
			tasks = append(tasks, copyTask(t))
		}
	}
	return tasks
}

func copyTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
