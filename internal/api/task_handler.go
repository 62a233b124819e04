package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/phrazzld/taskmanager-api/internal/validation"
)

// TaskIDParam is the chi path parameter naming a task.
const TaskIDParam = "id"

// TaskHandler serves the per-user task endpoints. Every route it handles must
// sit behind AuthMiddleware.Authenticate.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_handler")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List handles GET /api/tasks. Only the caller's tasks are returned.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks, err := h.taskStore.ListByOwner(r.Context(), owner)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskList(tasks))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	claims, err := claimsFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var in validation.TaskInput
	if !decodeBody(w, r, &in) {
		return
	}

	newTask, err := validation.ValidateTaskCreate(in, claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskStore.Create(r.Context(), &domain.Task{
		Title:       newTask.Title,
		Description: newTask.Description,
		Completed:   newTask.Completed,
		UserID:      newTask.UserID,
		CreatedAt:   h.now(),
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskResponse{
		Success: true,
		Message: "Task created successfully",
		Task:    task,
	})
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Success: true,
		Task:    task,
	})
}

// Update handles PUT /api/tasks/{id}. Fields absent from the body are left
// unchanged. Existence and ownership are checked before the body is
// validated.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in validation.TaskInput
	if !decodeBody(w, r, &in) {
		return
	}

	task, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	patch, err := validation.ValidateTaskUpdate(in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.taskStore.Update(r.Context(), task.ID, patch)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if updated == nil {
		// Deleted between the ownership check and the write.
		HandleAPIError(w, r, domain.NewNotFoundError(validation.MsgTaskNotFound))
		return
	}

	log.Info("task updated", slog.String("task_id", updated.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Success: true,
		Message: "Task updated successfully",
		Task:    updated,
	})
}

// Delete handles DELETE /api/tasks/{id} and returns the removed task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	task, ok := h.ownedTask(w, r)
	if !ok {
		return
	}

	deleted, err := h.taskStore.Delete(r.Context(), task.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if deleted == nil {
		HandleAPIError(w, r, domain.NewNotFoundError(validation.MsgTaskNotFound))
		return
	}

	log.Info("task deleted", slog.String("task_id", deleted.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Success: true,
		Message: "Task deleted successfully",
		Task:    deleted,
	})
}

// ownedTask resolves the caller and the task named in the path, and checks
// that the caller owns it. On failure it writes the error response and
// returns false.
func (h *TaskHandler) ownedTask(w http.ResponseWriter, r *http.Request) (*domain.Task, bool) {
	owner, err := ownerFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}

	taskID, err := getPathUUID(r, TaskIDParam, MsgInvalidTaskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}

	task, err = validation.CheckTaskOwnership(task, owner)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("task access refused",
			slog.String("task_id", taskID.String()),
			slog.String("user_id", owner.String()),
			slog.String("reason", err.Error()))
		HandleAPIError(w, r, err)
		return nil, false
	}

	return task, true
}
