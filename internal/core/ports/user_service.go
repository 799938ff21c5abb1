package ports

import (
	"context"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
)

// UserService exposes read-only account lookups for authenticated callers.
type UserService interface {
	// Employees returns every account with the employee role. Admin only;
	// other roles get domain.ErrForbidden.
	Employees(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	// UserInfo returns the caller's own account.
	UserInfo(ctx context.Context, p domain.Principal) (*domain.User, error)
}
