package ports

import (
	"context"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration, login and token revocation.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the credentials and that the account actually has the
	// requested role; a wrong role yields domain.ErrRoleMismatch.
	Login(ctx context.Context, email, password, role string) (*LoginResult, error)
	// Logout revokes the given token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
