package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, "invalid status"},
		{"invalid task id", domain.ErrInvalidTaskID, http.StatusBadRequest, "invalid task id"},
		{"unknown assignee", domain.ErrUnknownAssignee, http.StatusBadRequest, "unknown assignee"},
		{"duplicate user", domain.ErrUserExists, http.StatusBadRequest, "User already exists"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid Credential!"},
		{"role mismatch", domain.ErrRoleMismatch, http.StatusBadRequest, "User type mismatch!"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "missing token"), http.StatusUnauthorized, "missing token"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/tasks/t1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Fatalf("expected body to contain %q, got %s", tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.JSON(http.StatusOK, map[string]string{"ok": "true"}); err != nil {
		t.Fatalf("writing response: %v", err)
	}
	handler(domain.ErrTaskNotFound, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response was overwritten, status %d", rec.Code)
	}
}
