package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// Request bodies are decoded into validation.CredentialsInput and
// validation.TaskInput so that presence and type errors reach the validator.

// RegisterResponse is returned by POST /api/auth/register.
type RegisterResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      domain.PublicUser `json:"user"`
}

// TaskListResponse is returned by the task listing endpoints.
type TaskListResponse struct {
	Success bool           `json:"success"`
	UserID  *uuid.UUID     `json:"userId,omitempty"`
	Count   int            `json:"count"`
	Tasks   []*domain.Task `json:"tasks"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Task    *domain.Task `json:"task"`
}

// UserListResponse is returned by GET /api/debug/users.
type UserListResponse struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Users   []domain.PublicUser `json:"users"`
}

// DatabaseStats summarises store contents.
type DatabaseStats struct {
	TotalUsers     int  `json:"totalUsers"`
	TotalTasks     int  `json:"totalTasks"`
	TasksCompleted int  `json:"tasksCompleted"`
	TasksPending   int  `json:"tasksPending"`
	CallerTasks    *int `json:"callerTasks,omitempty"`
}

// DatabaseStatsResponse is returned by GET /api/debug/database-stats.
type DatabaseStatsResponse struct {
	Success bool          `json:"success"`
	Stats   DatabaseStats `json:"stats"`
}

// taskList builds a list response, never encoding a nil slice as null.
func taskList(tasks []*domain.Task) TaskListResponse {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return TaskListResponse{Success: true, Count: len(tasks), Tasks: tasks}
}
