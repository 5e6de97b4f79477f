package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/shiftline/internal/domain"
)

// PostgresShiftRepository implements domain.ShiftRepository using PostgreSQL
type PostgresShiftRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresShiftRepository creates a new shift request repository
func NewPostgresShiftRepository(db *sql.DB, logger *slog.Logger) *PostgresShiftRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresShiftRepository{db: db, logger: logger}
}

// Create inserts a new open shift request and fills in its assigned id
func (r *PostgresShiftRepository) Create(ctx context.Context, s *domain.ShiftRequest) error {
	s.Status = domain.ShiftOpen

	query := `
		INSERT INTO shift_requests (requester_id, date, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, s.RequesterID, s.Date, s.Status).Scan(&s.ID)
	if err != nil {
		r.logger.Error("failed to create shift request",
			slog.Int64("requester_id", s.RequesterID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create shift request: %w", err)
	}
	return nil
}

// ListOpen returns open requests with requester names, earliest date
// first, insertion order within a date.
func (r *PostgresShiftRepository) ListOpen(ctx context.Context) ([]*domain.OpenShift, error) {
	query := `
		SELECT s.id, s.requester_id, s.date, s.status, e.name
		FROM shift_requests s
		JOIN employees e ON s.requester_id = e.id
		WHERE s.status = $1
		ORDER BY s.date ASC, s.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, domain.ShiftOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to list open shift requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.OpenShift
	for rows.Next() {
		s := &domain.OpenShift{}
		if err := rows.Scan(&s.ID, &s.RequesterID, &s.Date, &s.Status, &s.RequesterName); err != nil {
			return nil, fmt.Errorf("failed to scan shift request: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Claim transitions the request open -> taken and inserts the taker's
// work log in one transaction. The status check rides on the UPDATE's
// WHERE clause: of N concurrent claimants exactly one sees a row come
// back, everyone else gets ErrConflict.
func (r *PostgresShiftRepository) Claim(ctx context.Context, requestID, takerID int64, hours float64) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer tx.Rollback()

	var date string
	err = tx.QueryRowContext(ctx, `
		UPDATE shift_requests
		SET status = $1, taker_id = $2
		WHERE id = $3 AND status = $4
		RETURNING date
	`, domain.ShiftTaken, takerID, requestID, domain.ShiftOpen).Scan(&date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("shift request %d already taken or not found: %w", requestID, domain.ErrConflict)
		}
		return "", fmt.Errorf("failed to claim shift request: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO work_logs (employee_id, date, hours)
		VALUES ($1, $2, $3)
	`, takerID, date, hours); err != nil {
		return "", fmt.Errorf("failed to create work log for taker: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit claim: %w", err)
	}

	r.logger.Info("shift request claimed",
		slog.Int64("request_id", requestID),
		slog.Int64("taker_id", takerID),
		slog.String("date", date),
	)
	return date, nil
}
