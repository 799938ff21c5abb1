package domain

import (
	"errors"
	"time"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not started"
	StatusInProgress TaskStatus = "in progress"
	StatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus validates a status string received from the outside.
// Only the three enumerated values are ever persisted.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return TaskStatus(s), nil
	}
	return "", ErrInvalidStatus
}

var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidStatus = errors.New("invalid task status")
var ErrInvalidTaskID = errors.New("invalid task id")
var ErrUnknownAssignee = errors.New("unknown assignee")
var ErrForbidden = errors.New("access forbidden")

// Task is the core aggregate. OwnerID is fixed at creation and never changes.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	Status      TaskStatus `json:"status"`
	OwnerID     string     `json:"owner_id"`
	AssigneeIDs []string   `json:"assignee_ids"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasAssignee reports whether userID appears in the task's assignee set.
func (t *Task) HasAssignee(userID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}
