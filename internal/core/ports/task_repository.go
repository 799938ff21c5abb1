package ports

import (
	"context"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/policy"
)

// ListSort describes an optional sort for task listings. A zero Field means
// natural (insertion) order.
type ListSort struct {
	Field string // one of "title", "text", "status", "created_at"
	Desc  bool
}

// TaskChanges carries the fields of a partial task update. Nil means
// "leave unchanged"; the repository applies the non-nil fields in a single
// atomic update.
type TaskChanges struct {
	Title       *string
	Text        *string
	Status      *domain.TaskStatus
	AssigneeIDs *[]string
}

// TaskRepository defines persistence operations for tasks. Update, UpdateStatus
// and Delete rely on the store's atomic single-document semantics; there is no
// optimistic-concurrency token, concurrent writers are last-writer-wins per
// field.
type TaskRepository interface {
	Insert(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound when absent and
	// domain.ErrInvalidTaskID when id is not a well-formed identifier.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns the tasks visible under scope, ordered by sort.
	List(ctx context.Context, scope policy.VisibilityScope, sort ListSort) ([]*domain.Task, error)
	// Update atomically applies changes and returns the updated task.
	Update(ctx context.Context, id string, changes TaskChanges) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
