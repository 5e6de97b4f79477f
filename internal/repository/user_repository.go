package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/shiftline/internal/domain"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *sql.DB, logger *slog.Logger) *PostgresUserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserRepository{db: db, logger: logger}
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, employee_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Role, u.EmployeeID).Scan(&u.ID)
	if err != nil {
		r.logger.Error("failed to create user",
			slog.String("username", u.Username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	var employeeID sql.NullInt64

	query := `
		SELECT id, username, password_hash, role, employee_id
		FROM users
		WHERE username = $1
	`

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &employeeID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if employeeID.Valid {
		u.EmployeeID = &employeeID.Int64
	}
	return u, nil
}

// DeleteByEmployee removes the user paired with an employee. Deleting
// an employee that never had a user is not an error.
func (r *PostgresUserRepository) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete user for employee %d: %w", employeeID, err)
	}
	return nil
}
