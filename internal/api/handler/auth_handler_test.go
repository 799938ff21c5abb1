package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password, role string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password, role string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password, role)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Name != "Alice" || input.Role != "individual" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "u1", Name: input.Name, Email: input.Email, Role: domain.RoleIndividual}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","role":"individual"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret1","role":"individual"}`)

	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret1","role":"wizard"}`)

	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password, role string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "secret" || role != "admin" {
				t.Fatalf("unexpected args: %s %s %s", email, password, role)
			}
			return &ports.LoginResult{
				Token: "token123",
				User:  &domain.User{ID: "u1", Role: domain.RoleAdmin},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"secret","role":"admin"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["id"] != "u1" || resp["role"] != "admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _, _ string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"bad"}`)

	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid Credential!") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_RoleMismatch(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _, _ string) (*ports.LoginResult, error) {
			return nil, domain.ErrRoleMismatch
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"secret","role":"admin"}`)

	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User type mismatch!") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revokedToken string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revokedToken = token
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/logout", "")
	c.Set("token", "token123")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revokedToken != "token123" {
		t.Fatalf("expected token to reach the service, got %q", revokedToken)
	}
}
