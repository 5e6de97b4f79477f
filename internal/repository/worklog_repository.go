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

// PostgresWorkLogRepository implements domain.WorkLogRepository using PostgreSQL
type PostgresWorkLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresWorkLogRepository creates a new work log repository
func NewPostgresWorkLogRepository(db *sql.DB, logger *slog.Logger) *PostgresWorkLogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWorkLogRepository{db: db, logger: logger}
}

// Create inserts a new work log and fills in its assigned id
func (r *PostgresWorkLogRepository) Create(ctx context.Context, l *domain.WorkLog) error {
	query := `
		INSERT INTO work_logs (employee_id, date, hours, is_paid, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, l.EmployeeID, l.Date, l.Hours, l.IsPaid, l.Notes).Scan(&l.ID)
	if err != nil {
		r.logger.Error("failed to create work log",
			slog.Int64("employee_id", l.EmployeeID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create work log: %w", err)
	}
	return nil
}

// List returns all work logs joined with employee names, newest date
// first. Logs whose employee was deleted come back with an empty name.
func (r *PostgresWorkLogRepository) List(ctx context.Context) ([]*domain.WorkLogEntry, error) {
	query := `
		SELECT w.id, w.employee_id, w.date, w.hours, w.is_paid, w.notes, COALESCE(e.name, '')
		FROM work_logs w
		LEFT JOIN employees e ON w.employee_id = e.id
		ORDER BY w.date DESC, w.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}
	defer rows.Close()

	var out []*domain.WorkLogEntry
	for rows.Next() {
		entry := &domain.WorkLogEntry{}
		var notes sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.EmployeeID, &entry.Date, &entry.Hours,
			&entry.IsPaid, &notes, &entry.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		entry.Notes = notes.String
		out = append(out, entry)
	}
	return out, rows.Err()
}

// TogglePaid flips is_paid in a single statement and returns the
// updated row.
func (r *PostgresWorkLogRepository) TogglePaid(ctx context.Context, id int64) (*domain.WorkLog, error) {
	l := &domain.WorkLog{}
	var notes sql.NullString

	query := `
		UPDATE work_logs
		SET is_paid = NOT is_paid
		WHERE id = $1
		RETURNING id, employee_id, date, hours, is_paid, notes
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.EmployeeID, &l.Date, &l.Hours, &l.IsPaid, &notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work log %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to toggle paid status: %w", err)
	}

	l.Notes = notes.String
	return l, nil
}

// UpdateNote replaces the note on a work log
func (r *PostgresWorkLogRepository) UpdateNote(ctx context.Context, id int64, note string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_logs SET notes = NULLIF($1, '') WHERE id = $2`, note, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("work log %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// PayeesForLogs resolves the distinct employees owning any of the given
// logs. Employees deleted since logging are skipped.
func (r *PostgresWorkLogRepository) PayeesForLogs(ctx context.Context, ids []int64) ([]domain.Payee, error) {
	query := `
		SELECT DISTINCT e.id, e.name, COALESCE(e.phone, '')
		FROM work_logs w
		JOIN employees e ON w.employee_id = e.id
		WHERE w.id = ANY($1)
		ORDER BY e.id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve payees: %w", err)
	}
	defer rows.Close()

	var out []domain.Payee
	for rows.Next() {
		var p domain.Payee
		if err := rows.Scan(&p.EmployeeID, &p.Name, &p.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan payee: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkPaid sets is_paid on all given ids in one statement. Already-paid
// rows still count as matched; only unknown ids fall out of the total.
func (r *PostgresWorkLogRepository) MarkPaid(ctx context.Context, ids []int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_logs SET is_paid = TRUE WHERE id = ANY($1)`, pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark logs paid: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}

// Stats aggregates the whole table in one read-only transaction so all
// five figures come from the same snapshot. Dates are ISO strings, so
// the >= comparison is plain lexicographic.
func (r *PostgresWorkLogRepository) Stats(ctx context.Context, since string) (*domain.WorkLogStats, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	stats := &domain.WorkLogStats{}

	err = tx.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(hours) FILTER (WHERE NOT is_paid), 0),
			COALESCE(SUM(hours) FILTER (WHERE date >= $1), 0),
			COUNT(*) FILTER (WHERE is_paid),
			COUNT(*) FILTER (WHERE NOT is_paid)
		FROM work_logs
	`, since).Scan(&stats.UnpaidHours, &stats.WeekHours, &stats.PaidCount, &stats.UnpaidCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate work logs: %w", err)
	}

	// Ties broken by lowest employee id so the result is deterministic.
	top := &domain.TopEmployee{}
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(e.name, ''), SUM(w.hours) AS total_hours
		FROM work_logs w
		LEFT JOIN employees e ON w.employee_id = e.id
		GROUP BY w.employee_id, e.name
		ORDER BY total_hours DESC, w.employee_id ASC
		LIMIT 1
	`).Scan(&top.Name, &top.Hours)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no logs at all
	case err != nil:
		return nil, fmt.Errorf("failed to compute top employee: %w", err)
	default:
		stats.Top = top
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stats transaction: %w", err)
	}
	return stats, nil
}
