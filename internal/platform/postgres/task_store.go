package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, title, description, completed, user_id, created_at`

// Create implements store.TaskStore.Create.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task id: %w", err)
	}

	query := `
		INSERT INTO tasks (id, title, description, completed, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	created, err := scanTask(s.db.QueryRowContext(ctx, query,
		id, task.Title, task.Description, task.Completed, task.UserID, task.CreatedAt))
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("user_id", task.UserID.String()))
			return nil, fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("user_id", task.UserID.String()))
		return nil, MapError(err)
	}

	log.Debug("task created",
		slog.String("task_id", created.ID.String()),
		slog.String("user_id", created.UserID.String()))
	return created, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return s.getOne(ctx, "get", query, id)
}

// ListByOwner implements store.TaskStore.ListByOwner.
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at, id`
	return s.getMany(ctx, "list by owner", query, userID)
}

// List implements store.TaskStore.List.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`
	return s.getMany(ctx, "list", query)
}

// Update implements store.TaskStore.Update. Absent patch fields keep their
// stored value through COALESCE, so the merge is a single statement.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	query := `
		UPDATE tasks
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    completed = COALESCE($4, completed)
		WHERE id = $1
		RETURNING ` + taskColumns
	return s.getOne(ctx, "update", query, id, patch.Title, patch.Description, patch.Completed)
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns
	return s.getOne(ctx, "delete", query, id)
}

// DeleteByOwner implements store.TaskStore.DeleteByOwner.
func (s *PostgresTaskStore) DeleteByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `DELETE FROM tasks WHERE user_id = $1 RETURNING ` + taskColumns
	return s.getMany(ctx, "delete by owner", query, userID)
}

// Count implements store.TaskStore.Count.
func (s *PostgresTaskStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// CountByOwner implements store.TaskStore.CountByOwner.
func (s *PostgresTaskStore) CountByOwner(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

func (s *PostgresTaskStore) getOne(ctx context.Context, op, query string, args ...any) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("task query failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", op, "query failed", MapError(err))
	}
	return task, nil
}

func (s *PostgresTaskStore) getMany(ctx context.Context, op, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("task query failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", op, "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return &task, nil
}
