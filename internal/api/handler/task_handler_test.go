package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/ports"
)

type stubTaskService struct {
	createFn       func(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*ports.TaskView, error)
	listFn         func(ctx context.Context, p domain.Principal, input ports.ListTasksInput) ([]*ports.TaskView, error)
	getFn          func(ctx context.Context, p domain.Principal, id string) (*ports.TaskView, error)
	updateFn       func(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*ports.TaskView, error)
	updateStatusFn func(ctx context.Context, p domain.Principal, id, status string) (*ports.TaskView, error)
	deleteFn       func(ctx context.Context, p domain.Principal, id string) error
}

func (s *stubTaskService) Create(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*ports.TaskView, error) {
	return s.createFn(ctx, p, input)
}

func (s *stubTaskService) List(ctx context.Context, p domain.Principal, input ports.ListTasksInput) ([]*ports.TaskView, error) {
	return s.listFn(ctx, p, input)
}

func (s *stubTaskService) Get(ctx context.Context, p domain.Principal, id string) (*ports.TaskView, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubTaskService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*ports.TaskView, error) {
	return s.updateFn(ctx, p, id, input)
}

func (s *stubTaskService) UpdateStatus(ctx context.Context, p domain.Principal, id, status string) (*ports.TaskView, error) {
	return s.updateStatusFn(ctx, p, id, status)
}

func (s *stubTaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

func newTaskTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "admin")
	return c, rec
}

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(_ context.Context, p domain.Principal, input ports.CreateTaskInput) (*ports.TaskView, error) {
			if p.ID != "u1" || p.Role != domain.RoleAdmin {
				t.Fatalf("unexpected principal: %+v", p)
			}
			if input.Title != "Write report" || len(input.AssigneeIDs) != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.TaskView{ID: "t1", Title: input.Title, Status: "not started"}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskTestContext(t, http.MethodPost, "/tasks",
		`{"title":"Write report","text":"Q3 numbers","assignees":["u2"]}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var view ports.TaskView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if view.ID != "t1" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestTaskHandler_Create_InvalidStatus(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(_ context.Context, _ domain.Principal, _ ports.CreateTaskInput) (*ports.TaskView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTaskTestContext(t, http.MethodPost, "/tasks",
		`{"title":"Write report","text":"Q3 numbers","status":"done"}`)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Create_MissingPrincipal(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"x","text":"y"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestTaskHandler_List_PassesSortParams(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(_ context.Context, _ domain.Principal, input ports.ListTasksInput) ([]*ports.TaskView, error) {
			if input.SortBy != "title" || input.SortOrder != "desc" {
				t.Fatalf("unexpected sort input: %+v", input)
			}
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskTestContext(t, http.MethodGet, "/tasks?sortBy=title&sortOrder=desc", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestTaskHandler_Get_PropagatesDomainError(t *testing.T) {
	stub := &stubTaskService{
		getFn: func(_ context.Context, _ domain.Principal, id string) (*ports.TaskView, error) {
			if id != "t404" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTaskTestContext(t, http.MethodGet, "/tasks/t404", "")
	c.SetParamNames("id")
	c.SetParamValues("t404")

	if err := h.Get(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_UpdateStatus(t *testing.T) {
	stub := &stubTaskService{
		updateStatusFn: func(_ context.Context, _ domain.Principal, id, status string) (*ports.TaskView, error) {
			if id != "t1" || status != "completed" {
				t.Fatalf("unexpected args: %s %s", id, status)
			}
			return &ports.TaskView{ID: "t1", Status: "completed"}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskTestContext(t, http.MethodPut, "/tasks/t1/status", `{"status":"completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(_ context.Context, _ domain.Principal, id string) error {
			if id != "t1" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskTestContext(t, http.MethodDelete, "/tasks/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Task deleted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
