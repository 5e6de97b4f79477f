package domain

import "context"

// Employee is a person tracked for scheduling and payroll purposes.
type Employee struct {
	ID    int64
	Name  string
	Role  string // free-text job title
	Email string // optional
	Phone string // optional, required for direct notification
}

// EmployeeRepository defines data access for employees
type EmployeeRepository interface {
	// CreateWithUser persists the employee and its login account in
	// one transaction: either both rows commit or neither does. The
	// account gets baseUsername, or baseUsername suffixed with the new
	// employee's id when the base is already taken (one retry; a
	// second collision propagates as a uniqueness failure). Returns
	// the username actually assigned.
	CreateWithUser(ctx context.Context, e *Employee, baseUsername, passwordHash string) (string, error)

	GetByID(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Delete(ctx context.Context, id int64) error
}
