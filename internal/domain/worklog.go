package domain

import "context"

// WorkLog records hours worked by an Employee on a calendar date.
// EmployeeID is not FK-constrained: logs deliberately survive employee
// deletion so historical payroll records stay intact.
type WorkLog struct {
	ID         int64
	EmployeeID int64
	Date       string // ISO 8601 YYYY-MM-DD
	Hours      float64
	IsPaid     bool
	Notes      string
}

// WorkLogEntry is a WorkLog joined with its employee's display name.
// EmployeeName is empty for orphaned logs.
type WorkLogEntry struct {
	WorkLog
	EmployeeName string
}

// Payee identifies an employee owed payment for one or more logs.
type Payee struct {
	EmployeeID int64
	Name       string
	Phone      string
}

// TopEmployee is the employee with the greatest all-time hours.
type TopEmployee struct {
	Name  string
	Hours float64
}

// WorkLogStats is the raw aggregate the dashboard is built from.
// All figures come out of one repository call.
type WorkLogStats struct {
	UnpaidHours float64
	WeekHours   float64
	Top         *TopEmployee // nil when no logs exist
	PaidCount   int64
	UnpaidCount int64
}

// WorkLogRepository defines data access for work logs
type WorkLogRepository interface {
	Create(ctx context.Context, l *WorkLog) error
	List(ctx context.Context) ([]*WorkLogEntry, error)

	// TogglePaid atomically flips is_paid and returns the updated row.
	// Returns ErrNotFound when the id is unknown.
	TogglePaid(ctx context.Context, id int64) (*WorkLog, error)

	// UpdateNote replaces the note. Returns ErrNotFound when the id is unknown.
	UpdateNote(ctx context.Context, id int64, note string) error

	// PayeesForLogs resolves the distinct employees owning any of the
	// given logs, deduplicated by employee.
	PayeesForLogs(ctx context.Context, ids []int64) ([]Payee, error)

	// MarkPaid sets is_paid on all given ids in one statement and
	// returns the number of matched rows, already-paid ones included.
	MarkPaid(ctx context.Context, ids []int64) (int64, error)

	// Stats aggregates the full table. since is the inclusive ISO date
	// lower bound for the recent-hours figure.
	Stats(ctx context.Context, since string) (*WorkLogStats, error)
}
