package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/shiftline/internal/service"
)

// TopEmployeeResponse names the employee with the most hours
type TopEmployeeResponse struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// StatsResponse is the dashboard payload
type StatsResponse struct {
	PayrollCostUnpaid float64              `json:"payroll_cost_unpaid"`
	HoursThisWeek     float64              `json:"hours_this_week"`
	TopEmployee       *TopEmployeeResponse `json:"top_employee"`
	PaidCount         int64                `json:"paid_count"`
	UnpaidCount       int64                `json:"unpaid_count"`
}

// DashboardHandler serves aggregated statistics, cached briefly in the
// shared stats cache between reads.
type DashboardHandler struct {
	dashboard *service.DashboardService
	stats     *StatsCache
	logger    *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService, stats *StatsCache, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, stats: stats, logger: logger}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.stats.get(r.Context()); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := StatsResponse{
		PayrollCostUnpaid: stats.PayrollCostUnpaid,
		HoursThisWeek:     stats.HoursThisWeek,
		PaidCount:         stats.PaidCount,
		UnpaidCount:       stats.UnpaidCount,
	}
	if stats.TopEmployee != nil {
		resp.TopEmployee = &TopEmployeeResponse{
			Name:  stats.TopEmployee.Name,
			Hours: stats.TopEmployee.Hours,
		}
	}

	h.stats.store(r.Context(), resp)
	writeJSON(w, http.StatusOK, resp)
}
