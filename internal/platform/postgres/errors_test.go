package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "test_table",
		ColumnName:     "test_column",
		ConstraintName: constraint,
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	generic := errors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil error", err: nil, wantNil: true},
		{name: "generic error passes through", err: generic, wantIs: generic},
		{name: "email unique violation", err: newPgError("23505", "users_email_key"), wantIs: store.ErrEmailExists},
		{name: "other unique violation", err: newPgError("23505", "tasks_pkey"), wantIs: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503", "tasks_user_id_fkey"), wantIs: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514", "tasks_title_check"), wantIs: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502", ""), wantIs: store.ErrInvalidEntity},
		{
			name:   "wrapped unique violation",
			err:    fmt.Errorf("insert failed: %w", newPgError("23505", "users_email_key")),
			wantIs: store.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}

	t.Run("non-email duplicate is not an email error", func(t *testing.T) {
		t.Parallel()
		got := postgres.MapError(newPgError("23505", "tasks_pkey"))
		assert.NotErrorIs(t, got, store.ErrEmailExists)
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsForeignKeyViolation(newPgError("23503", "")))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("generic")))
}
