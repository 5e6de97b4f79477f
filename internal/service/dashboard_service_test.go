package service

import (
	"context"
	"testing"
	"time"

	"github.com/yourorg/shiftline/internal/domain"
)

func TestDashboardStats(t *testing.T) {
	logs := newMemWorkLogRepo()
	logs.names[1] = "Alice"
	logs.names[2] = "Bob"

	// Fixed clock: "today" is 2026-08-31, so the week window starts
	// at 2026-08-24 inclusive.
	s := NewDashboardService(logs, 20, nil)
	s.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	seed := []domain.WorkLog{
		{EmployeeID: 1, Date: "2026-08-30", Hours: 3},               // unpaid, in window
		{EmployeeID: 1, Date: "2026-08-25", Hours: 5},               // unpaid, in window
		{EmployeeID: 2, Date: "2026-08-10", Hours: 6, IsPaid: true}, // paid, old
		{EmployeeID: 2, Date: "2026-08-24", Hours: 1, IsPaid: true}, // paid, boundary day counts
	}
	for i := range seed {
		if err := logs.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	// 8 unpaid hours at rate 20
	if stats.PayrollCostUnpaid != 160 {
		t.Fatalf("expected unpaid cost 160, got %v", stats.PayrollCostUnpaid)
	}
	if stats.HoursThisWeek != 9 {
		t.Fatalf("expected 9 hours this week, got %v", stats.HoursThisWeek)
	}
	if stats.TopEmployee == nil || stats.TopEmployee.Name != "Alice" || stats.TopEmployee.Hours != 8 {
		t.Fatalf("unexpected top employee: %+v", stats.TopEmployee)
	}
	if stats.PaidCount != 2 || stats.UnpaidCount != 2 {
		t.Fatalf("expected 2 paid / 2 unpaid, got %d / %d", stats.PaidCount, stats.UnpaidCount)
	}
}

func TestDashboardStatsEmpty(t *testing.T) {
	s := NewDashboardService(newMemWorkLogRepo(), 20, nil)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.PayrollCostUnpaid != 0 || stats.HoursThisWeek != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.TopEmployee != nil {
		t.Fatalf("expected nil top employee with no logs")
	}
}
