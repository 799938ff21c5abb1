package service

import (
	"context"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/ports"
)

// UserService implements account lookups for authenticated callers.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Employees lists every employee account. Restricted to admins; the RBAC
// middleware enforces the same rule at the transport layer, this check keeps
// the service safe when called from elsewhere.
func (s *UserService) Employees(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if p.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByRole(ctx, domain.RoleEmployee)
}

// UserInfo returns the caller's own account record.
func (s *UserService) UserInfo(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.repo.FindByID(ctx, p.ID)
}
