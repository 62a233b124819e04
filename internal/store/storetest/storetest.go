// Package storetest holds the behavioural contract every store
// implementation must satisfy. Backends run it from their own tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UserStoreFactory returns an empty UserStore.
type UserStoreFactory func(t *testing.T) store.UserStore

// TaskStoreFactory returns an empty TaskStore.
type TaskStoreFactory func(t *testing.T) store.TaskStore

// NewUser returns an unsaved user with a unique email.
func NewUser() *domain.User {
	return &domain.User{
		Email:        fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTask returns an unsaved task owned by owner.
func NewTask(owner uuid.UUID, title string) *domain.Task {
	return &domain.Task{
		Title:     title,
		UserID:    owner,
		CreatedAt: time.Now().UTC(),
	}
}

// RunUserStoreTests exercises a UserStore implementation.
func RunUserStoreTests(t *testing.T, newStore UserStoreFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("create assigns id and keeps fields", func(t *testing.T) {
		s := newStore(t)
		in := NewUser()

		got, err := s.Create(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.NotEqual(t, uuid.Nil, got.ID)
		assert.Equal(t, in.Email, got.Email)
		assert.Equal(t, in.PasswordHash, got.PasswordHash)
		assert.WithinDuration(t, in.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("created at reads back as returned", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, NewUser())
		require.NoError(t, err)

		byID, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.True(t, created.CreatedAt.Equal(byID.CreatedAt),
			"create returned %v, read returned %v", created.CreatedAt, byID.CreatedAt)

		byEmail, err := s.GetByEmail(ctx, created.Email)
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.True(t, created.CreatedAt.Equal(byEmail.CreatedAt))
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		s := newStore(t)
		first := NewUser()
		_, err := s.Create(ctx, first)
		require.NoError(t, err)

		dup := NewUser()
		dup.Email = first.Email
		_, err = s.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("concurrent duplicate registrations admit one", func(t *testing.T) {
		s := newStore(t)
		email := NewUser().Email

		const workers = 10
		var wg sync.WaitGroup
		results := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				u := NewUser()
				u.Email = email
				_, err := s.Create(ctx, u)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		created := 0
		for err := range results {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, store.ErrEmailExists)
		}
		assert.Equal(t, 1, created)
	})

	t.Run("lookups", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, NewUser())
		require.NoError(t, err)

		byID, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, created.Email, byID.Email)

		byEmail, err := s.GetByEmail(ctx, created.Email)
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, created.ID, byEmail.ID)

		missing, err := s.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)

		missing, err = s.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list and count", func(t *testing.T) {
		s := newStore(t)
		a, err := s.Create(ctx, NewUser())
		require.NoError(t, err)
		b, err := s.Create(ctx, NewUser())
		require.NoError(t, err)

		users, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, a.ID, users[0].ID)
		assert.Equal(t, b.ID, users[1].ID)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

// RunTaskStoreTests exercises a TaskStore implementation. owner returns a
// user id the store accepts as a task owner.
func RunTaskStoreTests(t *testing.T, newStore TaskStoreFactory, owner func(t *testing.T) uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	t.Run("create assigns unique ids", func(t *testing.T) {
		s := newStore(t)
		userID := owner(t)

		a, err := s.Create(ctx, NewTask(userID, "a"))
		require.NoError(t, err)
		b, err := s.Create(ctx, NewTask(userID, "b"))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, a.ID)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, userID, a.UserID)
		assert.Equal(t, "a", a.Title)
		assert.False(t, a.Completed)
	})

	t.Run("get by id", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, NewTask(owner(t), "read me"))
		require.NoError(t, err)

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "read me", got.Title)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

		missing, err := s.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list by owner filters", func(t *testing.T) {
		s := newStore(t)
		alice, bob := owner(t), owner(t)

		_, err := s.Create(ctx, NewTask(alice, "a1"))
		require.NoError(t, err)
		_, err = s.Create(ctx, NewTask(bob, "b1"))
		require.NoError(t, err)
		_, err = s.Create(ctx, NewTask(alice, "a2"))
		require.NoError(t, err)

		tasks, err := s.ListByOwner(ctx, alice)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "a1", tasks[0].Title)
		assert.Equal(t, "a2", tasks[1].Title)
		for _, task := range tasks {
			assert.Equal(t, alice, task.UserID)
		}

		none, err := s.ListByOwner(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, none)

		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = s.CountByOwner(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("update merges and keeps immutable fields", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, &domain.Task{
			Title:       "before",
			Description: "keep me",
			UserID:      owner(t),
			CreatedAt:   time.Now().UTC(),
		})
		require.NoError(t, err)

		done := true
		updated, err := s.Update(ctx, created.ID, domain.TaskPatch{Completed: &done})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.Completed)
		assert.Equal(t, "before", updated.Title)
		assert.Equal(t, "keep me", updated.Description)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.UserID, updated.UserID)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

		title, empty := "after", ""
		updated, err = s.Update(ctx, created.ID, domain.TaskPatch{Title: &title, Description: &empty})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, "", updated.Description)
		assert.True(t, updated.Completed)

		stored, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, stored)

		missing, err := s.Update(ctx, uuid.New(), domain.TaskPatch{Title: &title})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("empty patch leaves task unchanged", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, NewTask(owner(t), "untouched"))
		require.NoError(t, err)

		got, err := s.Update(ctx, created.ID, domain.TaskPatch{})
		require.NoError(t, err)
		assert.Equal(t, created, got)

		missing, err := s.Update(ctx, uuid.New(), domain.TaskPatch{})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("delete returns removed task", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, NewTask(owner(t), "gone"))
		require.NoError(t, err)

		removed, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, created.ID, removed.ID)
		assert.Equal(t, "gone", removed.Title)

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		again, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("delete by owner", func(t *testing.T) {
		s := newStore(t)
		alice, bob := owner(t), owner(t)
		for _, title := range []string{"a1", "a2"} {
			_, err := s.Create(ctx, NewTask(alice, title))
			require.NoError(t, err)
		}
		kept, err := s.Create(ctx, NewTask(bob, "b1"))
		require.NoError(t, err)

		removed, err := s.DeleteByOwner(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, removed, 2)

		n, err := s.CountByOwner(ctx, alice)
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err := s.GetByID(ctx, kept.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)

		removed, err = s.DeleteByOwner(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, removed)
	})

	t.Run("returned tasks are not aliased", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, NewTask(owner(t), "original"))
		require.NoError(t, err)

		created.Title = "mutated by caller"
		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.Title)

		got.Completed = true
		again, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, again.Completed)
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		s := newStore(t)
		userID := owner(t)

		const workers = 20
		var wg sync.WaitGroup
		ids := make(chan uuid.UUID, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				task, err := s.Create(ctx, NewTask(userID, fmt.Sprintf("t%d", i)))
				if assert.NoError(t, err) {
					ids <- task.ID
				}
			}(i)
		}
		wg.Wait()
		close(ids)

		seen := make(map[uuid.UUID]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})
}
