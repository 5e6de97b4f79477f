package audit

import (
	"context"
	"log/slog"
	"time"
)

// Logger records security-relevant domain actions (provisioning,
// deletion, payments) as structured log events.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates an audit logger
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

type requestIDKey struct{}

// WithRequestID attaches a request id to the context so audited
// actions can be correlated with the request that triggered them
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// LogAction records one audited action. A nil audit logger is a no-op
// so tests and the CLI don't have to wire one.
func (al *Logger) LogAction(ctx context.Context, actor, action, resource string, resourceID int64, status, details string) {
	if al == nil || al.logger == nil {
		return
	}

	requestID := ""
	if s, ok := ctx.Value(requestIDKey{}).(string); ok {
		requestID = s
	}

	al.logger.Info("audit",
		slog.String("actor", actor),
		slog.String("action", action),
		slog.String("resource", resource),
		slog.Int64("resource_id", resourceID),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", requestID),
		slog.Time("timestamp", time.Now()),
	)
}
