package validation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// Violation messages for task payloads.
const (
	MsgCreateTitle      = "Title is required and must be between 1-200 characters"
	MsgUpdateTitle      = "Title must be between 1-200 characters"
	MsgDescription      = "Description must be a string with max 1000 characters"
	MsgCompleted        = "Completed must be a boolean"
	MsgInvalidOwnerID   = "Valid user ID is required"
	MsgEmptyUpdate      = "At least one field (title, description, or completed) must be provided"
	MsgTaskNotFound     = "Task not found"
	MsgTaskAccessDenied = "Access denied"
)

// TaskInput is the raw body of the task create and update endpoints.
type TaskInput struct {
	Title       Field[string] `json:"title"`
	Description Field[string] `json:"description"`
	Completed   Field[bool]   `json:"completed"`
}

// taskRules carries the trimmed task values. Lengths are in characters.
type taskRules struct {
	Title       string `validate:"min=1,max=200"`
	Description string `validate:"max=1000"`
}

func newTaskRules(in TaskInput) *taskRules {
	return &taskRules{
		Title:       strings.TrimSpace(in.Title.Value),
		Description: strings.TrimSpace(in.Description.Value),
	}
}

// NewTask is a sanitized create payload with defaults applied.
type NewTask struct {
	Title       string
	Description string
	Completed   bool
	UserID      uuid.UUID
}

// ValidateTaskCreate checks a create payload and the owner identifier.
// Description defaults to "" and completed to false. Title and description
// are stored trimmed.
func ValidateTaskCreate(in TaskInput, ownerID string) (NewTask, error) {
	rules := newTaskRules(in)
	violations := check(rules, []member{
		memberOf("Title", in.Title, true, MsgCreateTitle),
		memberOf("Description", in.Description, false, MsgDescription),
		memberOf("", in.Completed, false, MsgCompleted),
	})
	owner, ownerErr := ParseOwnerID(ownerID)
	if ownerErr != nil {
		violations = append(violations, MsgInvalidOwnerID)
	}
	if len(violations) > 0 {
		return NewTask{}, domain.NewValidationError(violations...)
	}

	return NewTask{
		Title:       rules.Title,
		Description: rules.Description,
		Completed:   in.Completed.Value,
		UserID:      owner,
	}, nil
}

// ValidateTaskUpdate checks a partial update. At least one field must be
// present; every present field is held to the create constraints. Absent
// fields stay nil in the returned patch.
func ValidateTaskUpdate(in TaskInput) (domain.TaskPatch, error) {
	rules := newTaskRules(in)
	violations := check(rules, []member{
		memberOf("Title", in.Title, false, MsgUpdateTitle),
		memberOf("Description", in.Description, false, MsgDescription),
		memberOf("", in.Completed, false, MsgCompleted),
	})

	var patch domain.TaskPatch
	if in.Title.Set {
		patch.Title = &rules.Title
	}
	if in.Description.Set {
		patch.Description = &rules.Description
	}
	if in.Completed.Set {
		completed := in.Completed.Value
		patch.Completed = &completed
	}
	if patch.IsEmpty() {
		violations = append([]string{MsgEmptyUpdate}, violations...)
	}
	if len(violations) > 0 {
		return domain.TaskPatch{}, domain.NewValidationError(violations...)
	}
	return patch, nil
}

// ParseOwnerID validates an owner identifier taken from verified claims.
// A malformed identifier is a validation failure, never an ownership failure.
func ParseOwnerID(ownerID string) (uuid.UUID, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError(MsgInvalidOwnerID)
	}
	return id, nil
}

// CheckTaskOwnership returns the task unchanged when ownerID owns it.
// A nil task yields a not-found error; a task owned by someone else yields
// a forbidden error.
func CheckTaskOwnership(task *domain.Task, ownerID uuid.UUID) (*domain.Task, error) {
	if task == nil {
		return nil, domain.NewNotFoundError(MsgTaskNotFound)
	}
	if !task.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError(MsgTaskAccessDenied)
	}
	return task, nil
}
