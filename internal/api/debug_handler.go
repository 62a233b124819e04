package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/phrazzld/taskmanager-api/internal/validation"
)

// UserIDParam is the chi path parameter naming a user.
const UserIDParam = "userId"

// DebugHandler exposes read-only views over the stores. It is only mounted
// when debug routes are enabled.
type DebugHandler struct {
	userStore store.UserStore
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewDebugHandler creates a new DebugHandler with the given dependencies.
func NewDebugHandler(userStore store.UserStore, taskStore store.TaskStore, log *slog.Logger) *DebugHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DebugHandler{
		userStore: userStore,
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "debug_handler")),
	}
}

// Users handles GET /api/debug/users. Password hashes are never included.
func (h *DebugHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	public := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserListResponse{
		Success: true,
		Count:   len(public),
		Users:   public,
	})
}

// Tasks handles GET /api/debug/tasks.
func (h *DebugHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskList(tasks))
}

// DatabaseStats handles GET /api/debug/database-stats. When the request
// carries valid claims the caller's own task count is included.
func (h *DebugHandler) DatabaseStats(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := h.userStore.Count(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	stats := DatabaseStats{
		TotalUsers: totalUsers,
		TotalTasks: len(tasks),
	}
	for _, t := range tasks {
		if t.Completed {
			stats.TasksCompleted++
		} else {
			stats.TasksPending++
		}
	}

	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if owner, err := validation.ParseOwnerID(claims.UserID); err == nil {
			n, err := h.taskStore.CountByOwner(r.Context(), owner)
			if err != nil {
				HandleAPIError(w, r, err)
				return
			}
			stats.CallerTasks = &n
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DatabaseStatsResponse{
		Success: true,
		Stats:   stats,
	})
}

// UserTasks handles GET /api/debug/user/{userId}/tasks.
func (h *DebugHandler) UserTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, UserIDParam, validation.MsgInvalidOwnerID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if user == nil {
		HandleAPIError(w, r, domain.NewNotFoundError(MsgUserNotFound))
		return
	}

	tasks, err := h.taskStore.ListByOwner(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := taskList(tasks)
	resp.UserID = &user.ID
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
