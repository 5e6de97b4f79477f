package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yourorg/shiftline/internal/domain"
)

func TestEnsureAdminAndLogin(t *testing.T) {
	users := newMemUserRepo()
	s := NewAuthService(users, nil)

	if err := s.EnsureAdmin(context.Background(), "admin123"); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	// Second run is a no-op, not a duplicate
	if err := s.EnsureAdmin(context.Background(), "admin123"); err != nil {
		t.Fatalf("second ensure admin failed: %v", err)
	}

	r, err := s.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if r.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", r.Role)
	}
	if r.EmployeeID != nil {
		t.Fatalf("seed admin must not be tied to an employee")
	}

	if _, err := s.Login(context.Background(), "admin", "wrong"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error for wrong password, got %v", err)
	}
	if _, err := s.Login(context.Background(), "nobody", "admin123"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error for unknown user, got %v", err)
	}
}

func TestLoginValidation(t *testing.T) {
	s := NewAuthService(newMemUserRepo(), nil)

	if _, err := s.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty username, got %v", err)
	}
	if _, err := s.Login(context.Background(), "admin", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty password, got %v", err)
	}
}

func TestEmployeeLoginAfterProvisioning(t *testing.T) {
	employees, users := newProvisioningFakes()
	empSvc := NewEmployeeService(employees, users, "password123", nil, nil)
	authSvc := NewAuthService(users, nil)

	emp, creds, err := empSvc.Create(context.Background(), "Carol Diaz", "Server", "", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	r, err := authSvc.Login(context.Background(), creds.Username, creds.Password)
	if err != nil {
		t.Fatalf("login with provisioned credentials failed: %v", err)
	}
	if r.Role != domain.RoleEmployee {
		t.Fatalf("expected employee role, got %q", r.Role)
	}
	if r.EmployeeID == nil || *r.EmployeeID != emp.ID {
		t.Fatalf("login result not linked to employee %d", emp.ID)
	}
}
