package domain

import "context"

// User roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is a login credential record, optionally tied to an Employee.
// The password is stored as a bcrypt hash, never in the clear.
type User struct {
	ID           int64
	Username     string // unique
	PasswordHash string
	Role         string // RoleAdmin or RoleEmployee
	EmployeeID   *int64 // nil for the seed admin
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	DeleteByEmployee(ctx context.Context, employeeID int64) error
}
