package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/api/metrics"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/policy"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/ports"
)

// TaskService orchestrates task CRUD. Every operation runs the authorization
// engine before touching the store, so a denial never leaves partial state.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*ports.TaskView, error) {
	if !policy.CanCreate(p) {
		return nil, s.deny(p, policy.ActionCreate)
	}

	status := domain.StatusNotStarted
	if input.Status != "" {
		parsed, err := domain.ParseTaskStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	if len(input.AssigneeIDs) > 0 {
		if !policy.CanAssign(p) {
			return nil, s.deny(p, policy.ActionAssign)
		}
		if err := s.checkAssignees(ctx, input.AssigneeIDs); err != nil {
			return nil, err
		}
	}

	task := &domain.Task{
		Title:       input.Title,
		Text:        input.Text,
		Status:      status,
		OwnerID:     p.ID,
		AssigneeIDs: input.AssigneeIDs,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.tasks.Insert(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", p.ID).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(p.Role)).Inc()
	s.logger.Info().Str("task_id", created.ID).Str("owner_id", p.ID).Msg("task created")
	return s.view(ctx, created)
}

func (s *TaskService) List(ctx context.Context, p domain.Principal, input ports.ListTasksInput) ([]*ports.TaskView, error) {
	tasks, err := s.tasks.List(ctx, policy.Scope(p), listSort(input))
	if err != nil {
		return nil, err
	}
	return s.views(ctx, tasks)
}

func (s *TaskService) Get(ctx context.Context, p domain.Principal, id string) (*ports.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanRead(p, task) {
		return nil, domain.ErrForbidden
	}
	return s.view(ctx, task)
}

func (s *TaskService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*ports.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := policy.UpdatableFields(p, task)
	if allowed == nil {
		return nil, s.deny(p, policy.ActionUpdate)
	}

	var changes ports.TaskChanges
	if input.Title != nil {
		if !allowed.Has(policy.FieldTitle) {
			return nil, s.deny(p, policy.ActionUpdate)
		}
		changes.Title = input.Title
	}
	if input.Text != nil {
		if !allowed.Has(policy.FieldText) {
			return nil, s.deny(p, policy.ActionUpdate)
		}
		changes.Text = input.Text
	}
	if input.Status != nil {
		if !allowed.Has(policy.FieldStatus) {
			return nil, s.deny(p, policy.ActionUpdate)
		}
		status, err := domain.ParseTaskStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		changes.Status = &status
	}
	if input.AssigneeIDs != nil {
		if !allowed.Has(policy.FieldAssignees) {
			return nil, s.deny(p, policy.ActionAssign)
		}
		if err := s.checkAssignees(ctx, *input.AssigneeIDs); err != nil {
			return nil, err
		}
		changes.AssigneeIDs = input.AssigneeIDs
	}

	updated, err := s.tasks.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Str("user_id", p.ID).Msg("task updated")
	return s.view(ctx, updated)
}

func (s *TaskService) UpdateStatus(ctx context.Context, p domain.Principal, id string, status string) (*ports.TaskView, error) {
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdateStatusOnly(p, task) {
		return nil, s.deny(p, policy.ActionUpdateStatus)
	}

	updated, err := s.tasks.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, err
	}

	metrics.StatusUpdatesTotal.WithLabelValues(string(parsed)).Inc()
	s.logger.Info().Str("task_id", id).Str("user_id", p.ID).Str("status", string(parsed)).Msg("task status updated")
	return s.view(ctx, updated)
}

func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDelete(p, task) {
		return s.deny(p, policy.ActionDelete)
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Str("user_id", p.ID).Msg("task deleted")
	return nil
}

// deny records the denial metric and returns the canonical forbidden error.
func (s *TaskService) deny(p domain.Principal, action policy.Action) error {
	metrics.AuthDenialsTotal.WithLabelValues(string(action), string(p.Role)).Inc()
	return domain.ErrForbidden
}

// checkAssignees verifies that every id references an existing user.
func (s *TaskService) checkAssignees(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve assignees: %w", err)
	}
	known := make(map[string]struct{}, len(users))
	for _, u := range users {
		known[u.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return domain.ErrUnknownAssignee
		}
	}
	return nil
}

// listSort maps the public sort parameters onto repository sort fields.
// Unrecognized fields fall back to natural order, matching the behavior of
// ignoring the parameter entirely.
func listSort(input ports.ListTasksInput) ports.ListSort {
	var field string
	switch input.SortBy {
	case "title":
		field = "title"
	case "text":
		field = "text"
	case "status":
		field = "status"
	case "createdAt":
		field = "created_at"
	default:
		return ports.ListSort{}
	}
	return ports.ListSort{Field: field, Desc: input.SortOrder == "desc"}
}

// view resolves a single task to its client-facing shape.
func (s *TaskService) view(ctx context.Context, t *domain.Task) (*ports.TaskView, error) {
	views, err := s.views(ctx, []*domain.Task{t})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// views resolves owner and assignee ids to displayable identities with a
// single user lookup across all tasks. A referenced user that no longer
// exists degrades to an id-only ref instead of failing the read.
func (s *TaskService) views(ctx context.Context, tasks []*domain.Task) ([]*ports.TaskView, error) {
	idSet := make(map[string]struct{})
	for _, t := range tasks {
		idSet[t.OwnerID] = struct{}{}
		for _, id := range t.AssigneeIDs {
			idSet[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	refs := make(map[string]domain.UserRef, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve users: %w", err)
		}
		for _, u := range users {
			refs[u.ID] = u.Ref()
		}
	}

	ref := func(id string) domain.UserRef {
		if r, ok := refs[id]; ok {
			return r
		}
		return domain.UserRef{ID: id}
	}

	views := make([]*ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		assignees := make([]domain.UserRef, 0, len(t.AssigneeIDs))
		for _, id := range t.AssigneeIDs {
			assignees = append(assignees, ref(id))
		}
		views = append(views, &ports.TaskView{
			ID:        t.ID,
			Title:     t.Title,
			Text:      t.Text,
			Status:    string(t.Status),
			Owner:     ref(t.OwnerID),
			Assignees: assignees,
			CreatedAt: t.CreatedAt,
		})
	}
	return views, nil
}
