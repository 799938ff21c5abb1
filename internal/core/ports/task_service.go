package ports

import (
	"context"
	"time"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task. Status defaults
// to "not started" when empty. AssigneeIDs may only be set by principals
// with assignment rights.
type CreateTaskInput struct {
	Title       string
	Text        string
	Status      string
	AssigneeIDs []string
}

// UpdateTaskInput carries a partial update: nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Text        *string
	Status      *string
	AssigneeIDs *[]string
}

// ListTasksInput carries the optional sort parameters of the list endpoint.
// Unrecognized SortBy values are ignored, not rejected.
type ListTasksInput struct {
	SortBy    string // "title", "text", "status" or "createdAt"
	SortOrder string // "desc" for descending, anything else ascending
}

// TaskView is the task as returned to clients, with owner and assignees
// resolved to displayable identities.
type TaskView struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Text      string           `json:"text"`
	Status    string           `json:"status"`
	Owner     domain.UserRef   `json:"owner"`
	Assignees []domain.UserRef `json:"assignees"`
	CreatedAt time.Time        `json:"created_at"`
}

// TaskService defines the task use cases. Every operation consults the
// authorization engine before touching the store; denials carry
// domain.ErrForbidden and cause no side effect.
type TaskService interface {
	Create(ctx context.Context, p domain.Principal, input CreateTaskInput) (*TaskView, error)
	List(ctx context.Context, p domain.Principal, input ListTasksInput) ([]*TaskView, error)
	Get(ctx context.Context, p domain.Principal, id string) (*TaskView, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateTaskInput) (*TaskView, error)
	UpdateStatus(ctx context.Context, p domain.Principal, id string, status string) (*TaskView, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
