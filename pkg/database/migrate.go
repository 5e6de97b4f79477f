package database

import (
	"context"
	"fmt"
	"log/slog"
)

// Work logs and shift requests keep bare employee_id columns on purpose:
// historical payroll records must survive employee deletion, so no FK
// constraint is declared there. Creation-path existence checks live in
// the service layer instead.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		email TEXT,
		phone TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		employee_id BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS work_logs (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL,
		date TEXT NOT NULL,
		hours DOUBLE PRECISION NOT NULL CHECK (hours > 0),
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS shift_requests (
		id BIGSERIAL PRIMARY KEY,
		requester_id BIGINT NOT NULL,
		date TEXT NOT NULL,
		taker_id BIGINT,
		status TEXT NOT NULL DEFAULT 'open'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_logs_employee ON work_logs (employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_shift_requests_status ON shift_requests (status, date)`,
}

// Migrate applies the schema. Statements are idempotent so this runs
// unconditionally at startup.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := cp.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	cp.logger.Info("database schema ensured", slog.Int("statements", len(schema)))
	return nil
}
