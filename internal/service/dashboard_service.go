package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/shiftline/internal/domain"
)

// DashboardService computes payroll dashboard statistics. Pure query,
// no mutation.
type DashboardService struct {
	logs       domain.WorkLogRepository
	hourlyRate float64
	now        func() time.Time
	logger     *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(logs domain.WorkLogRepository, hourlyRate float64, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		logs:       logs,
		hourlyRate: hourlyRate,
		now:        time.Now,
		logger:     logger,
	}
}

// Stats is the dashboard payload.
type Stats struct {
	PayrollCostUnpaid float64
	HoursThisWeek     float64
	TopEmployee       *domain.TopEmployee
	PaidCount         int64
	UnpaidCount       int64
}

// Stats aggregates the full work log table. "This week" means the last
// 7 server-local calendar days, inclusive.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	since := s.now().AddDate(0, 0, -7).Format("2006-01-02")

	raw, err := s.logs.Stats(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Stats{
		PayrollCostUnpaid: raw.UnpaidHours * s.hourlyRate,
		HoursThisWeek:     raw.WeekHours,
		TopEmployee:       raw.Top,
		PaidCount:         raw.PaidCount,
		UnpaidCount:       raw.UnpaidCount,
	}, nil
}
