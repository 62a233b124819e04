package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type taskDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Completed   bool      `bson:"completed"`
	UserID      string    `bson:"user_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func newTaskDocument(id uuid.UUID, t *domain.Task) taskDocument {
	return taskDocument{
		ID:          id.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID.String(),
		CreatedAt:   storedTime(t.CreatedAt),
	}
}

func (d taskDocument) toDomain() (*domain.Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed task id %q", store.ErrInvalidEntity, d.ID)
	}
	owner, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed owner id %q", store.ErrInvalidEntity, d.UserID)
	}
	return &domain.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		UserID:      owner,
		CreatedAt:   d.CreatedAt.UTC(),
	}, nil
}

// TaskStore implements store.TaskStore on a MongoDB collection.
type TaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore on the tasks collection of db.
// If logger is nil, a default logger will be used.
func NewTaskStore(db *mongo.Database, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		coll:   db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: task has no owner", store.ErrInvalidEntity)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task id: %w", err)
	}

	doc := newTaskDocument(id, task)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("user_id", doc.UserID))
		return nil, store.NewStoreError("task", "create", "insert failed", err)
	}
	return doc.toDomain()
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return decodeOne(s.coll.FindOne(ctx, byID(id)))
}

// ListByOwner implements store.TaskStore.
func (s *TaskStore) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.find(ctx, byOwner(userID))
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.find(ctx, bson.D{})
}

// Update implements store.TaskStore. Only the fields present in patch are set.
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	set := bson.D{}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Completed != nil {
		set = append(set, bson.E{Key: "completed", Value: *patch.Completed})
	}
	res := s.coll.FindOneAndUpdate(ctx, byID(id),
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	return decodeOne(res)
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return decodeOne(s.coll.FindOneAndDelete(ctx, byID(id)))
}

// DeleteByOwner implements store.TaskStore. Tasks created for the owner
// while this runs are left in place.
func (s *TaskStore) DeleteByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.find(ctx, byOwner(userID))
	if err != nil || len(tasks) == 0 {
		return tasks, err
	}

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID.String())
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	if _, err := s.coll.DeleteMany(ctx, filter); err != nil {
		return nil, fmt.Errorf("failed to delete tasks: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("tasks deleted for owner",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Count implements store.TaskStore.
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return int(n), nil
}

// CountByOwner implements store.TaskStore.
func (s *TaskStore) CountByOwner(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.coll.CountDocuments(ctx, byOwner(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return int(n), nil
}

func (s *TaskStore) find(ctx context.Context, filter bson.D) ([]*domain.Task, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func decodeOne(res *mongo.SingleResult) (*domain.Task, error) {
	var doc taskDocument
	err := res.Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return doc.toDomain()
}

func byID(id uuid.UUID) bson.D {
	return bson.D{{Key: "_id", Value: id.String()}}
}

func byOwner(userID uuid.UUID) bson.D {
	return bson.D{{Key: "user_id", Value: userID.String()}}
}
