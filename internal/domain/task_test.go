package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaskPatchApply(t *testing.T) {
	owner := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	original := Task{
		ID:          uuid.New(),
		Title:       "write report",
		Description: "quarterly",
		Completed:   false,
		UserID:      owner,
		CreatedAt:   created,
	}

	done := true
	updated := TaskPatch{Completed: &done}.Apply(original)

	assert.True(t, updated.Completed)
	assert.Equal(t, original.Title, updated.Title)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, owner, updated.UserID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.False(t, original.Completed, "Apply must not mutate its argument")

	empty := ""
	title := "new title"
	updated = TaskPatch{Title: &title, Description: &empty}.Apply(original)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "", updated.Description)
}

func TestTaskPatchIsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	b := false
	assert.False(t, TaskPatch{Completed: &b}.IsEmpty())
}

func TestUserPublicAndNormalize(t *testing.T) {
	u := &User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "$2a$10$hash", CreatedAt: time.Now()}
	p := u.Public()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, u.Email, p.Email)

	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
}
