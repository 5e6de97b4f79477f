package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/shiftline/internal/service"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse reveals the account's role and employee link.
// No token: every request re-authenticates.
type LoginResponse struct {
	Success    bool   `json:"success"`
	Role       string `json:"role"`
	Username   string `json:"username"`
	EmployeeID *int64 `json:"employee_id"`
}

// LoginHandler handles user authentication
type LoginHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(auth *service.AuthService, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, logger: logger}
}

// ServeHTTP handles POST /api/login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success:    true,
		Role:       result.Role,
		Username:   result.Username,
		EmployeeID: result.EmployeeID,
	})
}
