package service

import (
	"context"
	"testing"

	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
)

func TestUserService_Employees_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	admin := addUser(repo, "admin1", "Ada", domain.RoleAdmin)
	individual := addUser(repo, "ind1", "Ivan", domain.RoleIndividual)
	addUser(repo, "emp1", "Eve", domain.RoleEmployee)
	addUser(repo, "emp2", "Earl", domain.RoleEmployee)

	employees, err := svc.Employees(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin listing failed: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	for _, u := range employees {
		if u.Role != domain.RoleEmployee {
			t.Fatalf("non-employee in result: %+v", u)
		}
	}

	if _, err := svc.Employees(context.Background(), individual); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_UserInfo(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	p := addUser(repo, "ind1", "Ivan", domain.RoleIndividual)

	user, err := svc.UserInfo(context.Background(), p)
	if err != nil {
		t.Fatalf("user info failed: %v", err)
	}
	if user.ID != p.ID || user.Name != "Ivan" {
		t.Fatalf("unexpected user: %+v", user)
	}

	ghost := domain.Principal{ID: "gone", Role: domain.RoleIndividual}
	if _, err := svc.UserInfo(context.Background(), ghost); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
