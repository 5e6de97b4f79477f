package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/shiftline/internal/infrastructure/redis"
	"github.com/yourorg/shiftline/pkg/database"
)

// HealthHandler handles liveness and readiness endpoints
type HealthHandler struct {
	db     *database.ConnectionPool
	redis  *redis.Client // nil when not configured
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.ConnectionPool, redisClient *redis.Client, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{db: db, redis: redisClient, logger: logger}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /readyz: 200 only when the datastore (and Redis,
// if configured) answer.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	ready := true

	if err := h.db.Health(ctx); err != nil {
		checks["database"] = "error: " + err.Error()
		ready = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			checks["redis"] = "error: " + err.Error()
			ready = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := "ready"
	code := http.StatusOK
	if !ready {
		status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
