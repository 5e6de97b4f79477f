package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/shiftline/internal/service"
)

// OpenShiftResponse is the API shape of an open shift request
type OpenShiftResponse struct {
	ID            int64  `json:"id"`
	RequesterID   int64  `json:"requester_id"`
	RequesterName string `json:"requester_name"`
	Date          string `json:"date"`
	Status        string `json:"status"`
}

// CreateShiftRequest posts a new shift request
type CreateShiftRequest struct {
	RequesterID int64  `json:"requester_id"`
	Date        string `json:"date"`
}

// TakeShiftRequest claims an open shift request
type TakeShiftRequest struct {
	TakerID int64 `json:"taker_id"`
}

// ShiftHandler handles the shift swap endpoints. Claiming a shift
// creates a work log, so it invalidates the dashboard stats cache.
type ShiftHandler struct {
	shifts *service.ShiftService
	stats  *StatsCache
	logger *slog.Logger
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shifts *service.ShiftService, stats *StatsCache, logger *slog.Logger) *ShiftHandler {
	return &ShiftHandler{shifts: shifts, stats: stats, logger: logger}
}

// List handles GET /api/shift-requests
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	open, err := h.shifts.ListOpen(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	out := make([]OpenShiftResponse, 0, len(open))
	for _, s := range open {
		out = append(out, OpenShiftResponse{
			ID:            s.ID,
			RequesterID:   s.RequesterID,
			RequesterName: s.RequesterName,
			Date:          s.Date,
			Status:        s.Status,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/shift-requests
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.shifts.Create(r.Context(), req.RequesterID, req.Date)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      created.ID,
		"message": "Shift request posted",
	})
}

// Take handles POST /api/shift-requests/{id}/take
func (h *ShiftHandler) Take(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req TakeShiftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.shifts.Take(r.Context(), id, req.TakerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.stats.invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "Shift taken successfully! Work log created.",
		"notification": result.Message,
	})
}
