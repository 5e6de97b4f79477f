package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/shiftline/internal/service"
)

// WorkLogResponse is the API shape of a work log joined with its
// employee's name (empty for orphaned logs).
type WorkLogResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	IsPaid       bool    `json:"is_paid"`
	Notes        string  `json:"notes,omitempty"`
}

// AddWorkLogRequest represents a work log creation request
type AddWorkLogRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"` // 0 means "use the default"
}

// UpdateNoteRequest replaces a log's note
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// BatchPayRequest marks a set of logs paid
type BatchPayRequest struct {
	LogIDs []int64 `json:"log_ids"`
}

// WorkLogHandler handles work log lifecycle endpoints. Mutations
// invalidate the dashboard stats cache so the payroll figures never
// serve stale totals.
type WorkLogHandler struct {
	logs   *service.WorkLogService
	stats  *StatsCache
	logger *slog.Logger
}

// NewWorkLogHandler creates a new work log handler
func NewWorkLogHandler(logs *service.WorkLogService, stats *StatsCache, logger *slog.Logger) *WorkLogHandler {
	return &WorkLogHandler{logs: logs, stats: stats, logger: logger}
}

// List handles GET /api/work-logs
func (h *WorkLogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.logs.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	out := make([]WorkLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, WorkLogResponse{
			ID:           e.ID,
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			Date:         e.Date,
			Hours:        e.Hours,
			IsPaid:       e.IsPaid,
			Notes:        e.Notes,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/work-logs
func (h *WorkLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddWorkLogRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := h.logs.Add(r.Context(), req.EmployeeID, req.Date, req.Hours)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.stats.invalidate(r.Context())
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      l.ID,
		"message": "Work log added",
	})
}

// TogglePaid handles POST /api/work-logs/{id}/toggle-paid
func (h *WorkLogHandler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	l, err := h.logs.TogglePaid(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.stats.invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      l.ID,
		"is_paid": l.IsPaid,
		"message": "Payment status updated",
	})
}

// UpdateNote handles POST /api/work-logs/{id}/notes
func (h *WorkLogHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.logs.UpdateNote(r.Context(), id, req.Note); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note updated"})
}

// BatchPay handles POST /api/work-logs/batch-pay
func (h *WorkLogHandler) BatchPay(w http.ResponseWriter, r *http.Request) {
	var req BatchPayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.logs.BatchPay(r.Context(), req.LogIDs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.stats.invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     result.Count,
		"employees": result.Employees,
		"message":   "Logs marked as paid",
	})
}
