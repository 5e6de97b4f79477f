package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/shiftline/internal/domain"
	"github.com/yourorg/shiftline/internal/service"
)

// EmployeeResponse is the API shape of an employee
type EmployeeResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CreateEmployeeRequest represents a provisioning request
type CreateEmployeeRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateEmployeeResponse includes the one-time generated credentials
type CreateEmployeeResponse struct {
	EmployeeResponse
	UserCreated struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"user_created"`
}

// EmployeeHandler handles employee provisioning endpoints
type EmployeeHandler struct {
	employees *service.EmployeeService
	logger    *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employees *service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, logger: logger}
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	emp, creds, err := h.employees.Create(r.Context(), req.Name, req.Role, req.Email, req.Phone)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := CreateEmployeeResponse{EmployeeResponse: toEmployeeResponse(emp)}
	resp.UserCreated.Username = creds.Username
	resp.UserCreated.Password = creds.Password
	writeJSON(w, http.StatusCreated, resp)
}

// Delete handles DELETE /api/employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted"})
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:    e.ID,
		Name:  e.Name,
		Role:  e.Role,
		Email: e.Email,
		Phone: e.Phone,
	}
}

// pathID parses the {id} path segment, answering 400 on garbage
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, nil, fmt.Errorf("invalid id: %w", domain.ErrValidation))
		return 0, false
	}
	return id, true
}
