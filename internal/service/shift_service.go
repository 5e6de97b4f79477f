package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/shiftline/internal/domain"
	"github.com/yourorg/shiftline/internal/notify"
	"github.com/yourorg/shiftline/internal/observability/metrics"
	"github.com/yourorg/shiftline/internal/security/audit"
)

// ShiftService handles the shift swap workflow:
// open --take--> taken, and nothing else.
type ShiftService struct {
	shifts       domain.ShiftRepository
	employees    domain.EmployeeRepository
	notifier     notify.Notifier
	defaultHours float64
	groupID      string
	auditLog     *audit.Logger
	logger       *slog.Logger
}

// NewShiftService creates a new shift service
func NewShiftService(
	shifts domain.ShiftRepository,
	employees domain.EmployeeRepository,
	notifier notify.Notifier,
	defaultHours float64,
	groupID string,
	auditLog *audit.Logger,
	logger *slog.Logger,
) *ShiftService {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultHours <= 0 {
		defaultHours = 7
	}
	return &ShiftService{
		shifts:       shifts,
		employees:    employees,
		notifier:     notifier,
		defaultHours: defaultHours,
		groupID:      groupID,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// Create posts a new open shift request
func (s *ShiftService) Create(ctx context.Context, requesterID int64, date string) (*domain.ShiftRequest, error) {
	if requesterID <= 0 || date == "" {
		return nil, fmt.Errorf("requester and date are required: %w", domain.ErrValidation)
	}

	if _, err := s.employees.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &domain.ShiftRequest{RequesterID: requesterID, Date: date}
	if err := s.shifts.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListOpen returns all open shift requests with requester names
func (s *ShiftService) ListOpen(ctx context.Context) ([]*domain.OpenShift, error) {
	return s.shifts.ListOpen(ctx)
}

// TakeResult reports a successful claim.
type TakeResult struct {
	Date    string
	Message string // the notification text, echoed to the caller
}

// Take claims an open shift request for the taker. The repository does
// the open->taken transition and the taker's work log atomically, so
// concurrent claims on one request produce exactly one success. After
// commit the swap is announced: to the configured group channel if one
// is set, else to the taker's own phone, else not at all.
func (s *ShiftService) Take(ctx context.Context, requestID, takerID int64) (*TakeResult, error) {
	if takerID <= 0 {
		return nil, fmt.Errorf("taker is required: %w", domain.ErrValidation)
	}

	taker, err := s.employees.GetByID(ctx, takerID)
	if err != nil {
		return nil, err
	}

	date, err := s.shifts.Claim(ctx, requestID, takerID, s.defaultHours)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.ObserveShiftClaim("conflict")
		}
		return nil, err
	}
	metrics.ObserveShiftClaim("taken")

	msg := fmt.Sprintf("%s has taken the shift for %s", taker.Name, date)
	switch {
	case s.groupID != "":
		s.notifier.Notify(notify.Group(s.groupID), msg)
	case taker.Phone != "":
		s.notifier.Notify(notify.Phone(taker.Phone), msg)
	}

	s.auditLog.LogAction(ctx, taker.Name, "take", "shift_request", requestID, "taken", date)
	return &TakeResult{Date: date, Message: msg}, nil
}
