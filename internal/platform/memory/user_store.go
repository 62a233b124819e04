package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// UserStore implements store.UserStore in memory.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
	order   []uuid.UUID
	logger  *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty UserStore. A nil logger uses slog.Default().
func NewUserStore(logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]uuid.UUID),
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

// Create implements store.UserStore. The email check and the insert happen
// under one write lock.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return nil, store.ErrEmailExists
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	stored := *user
	stored.ID = id
	s.byID[id] = &stored
	s.byEmail[stored.Email] = id
	s.order = append(s.order, id)

	s.logger.DebugContext(ctx, "user created", slog.String("user_id", id.String()))

	out := stored
	return &out, nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyUser(s.byID[id]), nil
}

// GetByEmail implements store.UserStore.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	return copyUser(s.byID[id]), nil
}

// List implements store.UserStore.
func (s *UserStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, copyUser(s.byID[id]))
	}
	return users, nil
}

// Count implements store.UserStore.
func (s *UserStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID), nil
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}
