package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/shiftline/internal/domain"
	"github.com/yourorg/shiftline/internal/security/audit"
)

// EmployeeService handles employee and user provisioning
type EmployeeService struct {
	employees       domain.EmployeeRepository
	users           domain.UserRepository
	defaultPassword string
	auditLog        *audit.Logger
	logger          *slog.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employees domain.EmployeeRepository,
	users domain.UserRepository,
	defaultPassword string,
	auditLog *audit.Logger,
	logger *slog.Logger,
) *EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeService{
		employees:       employees,
		users:           users,
		defaultPassword: defaultPassword,
		auditLog:        auditLog,
		logger:          logger,
	}
}

// Credentials is the one-time view of a freshly provisioned account.
// The plaintext password exists only in this value so it can be handed
// to the employee out-of-band; storage only ever sees the hash.
type Credentials struct {
	Username string
	Password string
}

// Create persists an employee and provisions its paired user account
// in a single repository transaction, so a failed account insert never
// leaves an employee behind. The username is the lowercase first token
// of the name; the repository suffixes the employee id on collision
// (one retry; a second collision would be a uniqueness failure and
// propagates).
func (s *EmployeeService) Create(ctx context.Context, name, role, email, phone string) (*domain.Employee, *Credentials, error) {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	if name == "" || role == "" {
		return nil, nil, fmt.Errorf("name and role are required: %w", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash default password", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to provision user account: %w", err)
	}

	emp := &domain.Employee{Name: name, Role: role, Email: email, Phone: phone}
	baseUsername := strings.ToLower(strings.Fields(name)[0])

	username, err := s.employees.CreateWithUser(ctx, emp, baseUsername, string(hash))
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("employee provisioned",
		slog.Int64("employee_id", emp.ID),
		slog.String("username", username),
	)
	s.auditLog.LogAction(ctx, username, "create", "employee", emp.ID, "created", "")

	return emp, &Credentials{Username: username, Password: s.defaultPassword}, nil
}

// List returns all employees
func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

// Get returns one employee by id
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// Delete removes an employee and its paired user account. Work logs
// and shift requests referencing the employee stay behind as orphaned
// historical records.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.users.DeleteByEmployee(ctx, id); err != nil {
		return err
	}

	s.logger.Info("employee deleted", slog.Int64("employee_id", id))
	s.auditLog.LogAction(ctx, "", "delete", "employee", id, "deleted", "work logs retained")
	return nil
}
