package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yourorg/shiftline/internal/domain"
	"github.com/yourorg/shiftline/internal/notify"
)

// SendNotificationRequest asks for a direct message to a phone number
// or a group. When both are set the group wins.
type SendNotificationRequest struct {
	Phone   string `json:"phone"`
	GroupID string `json:"group_id"`
	Message string `json:"message"`
}

// NotificationHandler exposes direct, fire-and-forget messaging
type NotificationHandler struct {
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier notify.Notifier, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifier: notifier, logger: logger}
}

// Send handles POST /api/notifications. The 202 goes out as soon as
// the job is queued; delivery outcome is never reported back.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendNotificationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Message == "" || (req.Phone == "" && req.GroupID == "") {
		writeError(w, h.logger, fmt.Errorf("message and a phone or group recipient are required: %w", domain.ErrValidation))
		return
	}

	target := notify.Phone(req.Phone)
	if req.GroupID != "" {
		target = notify.Group(req.GroupID)
	}
	h.notifier.Notify(target, req.Message)
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Notification queued"})
}
