package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yourorg/shiftline/internal/domain"
	"github.com/yourorg/shiftline/internal/notify"
	"github.com/yourorg/shiftline/internal/observability/metrics"
	"github.com/yourorg/shiftline/internal/security/audit"
)

// WorkLogService handles the work log lifecycle
type WorkLogService struct {
	logs         domain.WorkLogRepository
	employees    domain.EmployeeRepository
	notifier     notify.Notifier
	defaultHours float64
	auditLog     *audit.Logger
	logger       *slog.Logger
}

// NewWorkLogService creates a new work log service
func NewWorkLogService(
	logs domain.WorkLogRepository,
	employees domain.EmployeeRepository,
	notifier notify.Notifier,
	defaultHours float64,
	auditLog *audit.Logger,
	logger *slog.Logger,
) *WorkLogService {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultHours <= 0 {
		defaultHours = 7
	}
	return &WorkLogService{
		logs:         logs,
		employees:    employees,
		notifier:     notifier,
		defaultHours: defaultHours,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// Add records hours worked. Hours default to the configured value when
// zero. The employee must exist: logging against a deleted or unknown
// id is rejected even though rows created earlier survive deletion.
func (s *WorkLogService) Add(ctx context.Context, employeeID int64, date string, hours float64) (*domain.WorkLog, error) {
	if employeeID <= 0 || date == "" {
		return nil, fmt.Errorf("employee and date are required: %w", domain.ErrValidation)
	}
	if hours < 0 {
		return nil, fmt.Errorf("hours must be positive: %w", domain.ErrValidation)
	}
	if hours == 0 {
		hours = s.defaultHours
	}

	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	l := &domain.WorkLog{EmployeeID: employeeID, Date: date, Hours: hours}
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns all work logs with employee names
func (s *WorkLogService) List(ctx context.Context) ([]*domain.WorkLogEntry, error) {
	return s.logs.List(ctx)
}

// TogglePaid flips a log's paid status. On the transition to paid the
// owning employee is notified on their phone, when they have one.
func (s *WorkLogService) TogglePaid(ctx context.Context, id int64) (*domain.WorkLog, error) {
	l, err := s.logs.TogglePaid(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.IsPaid {
		metrics.AddWorkLogsPaid(1)
		emp, err := s.employees.GetByID(ctx, l.EmployeeID)
		if err != nil {
			// orphaned log: payment still stands, nobody to notify
			s.logger.Warn("paid log owner not found",
				slog.Int64("log_id", l.ID),
				slog.Int64("employee_id", l.EmployeeID),
			)
		} else if emp.Phone != "" {
			s.notifier.Notify(notify.Phone(emp.Phone),
				fmt.Sprintf("%s your pay is ready to collect", emp.Name))
		}
	}
	return l, nil
}

// UpdateNote replaces the note on a work log
func (s *WorkLogService) UpdateNote(ctx context.Context, id int64, note string) error {
	return s.logs.UpdateNote(ctx, id, note)
}

// BatchPayResult reports a bulk payment run.
type BatchPayResult struct {
	Count     int64    // matched rows; less than len(ids) only for unknown ids
	Employees []string // distinct names of affected employees
}

// BatchPay marks all given logs paid in one update and notifies each
// distinct owning employee that has a phone number.
func (s *WorkLogService) BatchPay(ctx context.Context, ids []int64) (*BatchPayResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no log ids provided: %w", domain.ErrValidation)
	}

	payees, err := s.logs.PayeesForLogs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(payees))
	for _, p := range payees {
		names = append(names, p.Name)
		if p.Phone != "" {
			s.notifier.Notify(notify.Phone(p.Phone),
				fmt.Sprintf("%s your pay is ready to collect", p.Name))
		}
	}

	count, err := s.logs.MarkPaid(ctx, ids)
	if err != nil {
		return nil, err
	}

	metrics.AddWorkLogsPaid(count)
	s.logger.Info("batch payment completed",
		slog.Int("requested", len(ids)),
		slog.Int64("updated", count),
	)
	s.auditLog.LogAction(ctx, "", "batch_pay", "work_log", 0, "paid",
		fmt.Sprintf("%d logs, %d employees", count, len(payees)))

	return &BatchPayResult{Count: count, Employees: names}, nil
}
