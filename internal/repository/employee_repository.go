package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/yourorg/shiftline/internal/domain"
)

// PostgresEmployeeRepository implements domain.EmployeeRepository using PostgreSQL
type PostgresEmployeeRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresEmployeeRepository creates a new employee repository
func NewPostgresEmployeeRepository(db *sql.DB, logger *slog.Logger) *PostgresEmployeeRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEmployeeRepository{db: db, logger: logger}
}

// CreateWithUser inserts the employee and its login account in one
// transaction, so a failed user insert never leaves an orphaned
// employee row. The username collision is resolved inside the same
// transaction: ON CONFLICT DO NOTHING detects a taken base username
// without aborting the transaction, and the insert is retried once
// with the employee id appended.
func (r *PostgresEmployeeRepository) CreateWithUser(ctx context.Context, e *domain.Employee, baseUsername, passwordHash string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	employeeQuery := `
		INSERT INTO employees (name, role, email, phone)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, employeeQuery, e.Name, e.Role, e.Email, e.Phone).Scan(&e.ID); err != nil {
		r.logger.Error("failed to create employee",
			slog.String("name", e.Name),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("failed to create employee: %w", err)
	}

	userQuery := `
		INSERT INTO users (username, password_hash, role, employee_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
	`
	username := baseUsername
	res, err := tx.ExecContext(ctx, userQuery, username, passwordHash, domain.RoleEmployee, e.ID)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to check rows affected: %w", err)
	}
	if inserted == 0 {
		// Base username taken, fall back to a unique variant. A plain
		// insert this time: a second collision is a hard failure.
		username = fmt.Sprintf("%s%d", baseUsername, e.ID)
		retryQuery := `
			INSERT INTO users (username, password_hash, role, employee_id)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, retryQuery, username, passwordHash, domain.RoleEmployee, e.ID); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return "", fmt.Errorf("username %q: %w", username, domain.ErrConflict)
			}
			return "", fmt.Errorf("failed to create user %q: %w", username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("employee provisioned",
		slog.Int64("employee_id", e.ID),
		slog.String("username", username),
	)
	return username, nil
}

// GetByID retrieves an employee by id
func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	e := &domain.Employee{}
	var email, phone sql.NullString

	query := `
		SELECT id, name, role, email, phone
		FROM employees
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Role, &email, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	e.Email = email.String
	e.Phone = phone.String
	return e, nil
}

// List returns all employees ordered by id
func (r *PostgresEmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, role, email, phone
		FROM employees
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []*domain.Employee
	for rows.Next() {
		e := &domain.Employee{}
		var email, phone sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &email, &phone); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Email = email.String
		e.Phone = phone.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes an employee. Work logs and shift requests referencing
// this id are left in place.
func (r *PostgresEmployeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
