package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/shiftline/internal/featureflags"
	"github.com/yourorg/shiftline/internal/observability/metrics"
	"github.com/yourorg/shiftline/internal/reliability/retry"
)

type job struct {
	target  Target
	message string
}

// Dispatcher delivers notifications asynchronously. Enqueueing never
// blocks and delivery failure is never surfaced to the caller: the
// triggering business operation succeeded at commit time regardless of
// what happens here. Attempts get their own timeout and bounded
// retries with backoff; whatever still fails is logged and counted.
type Dispatcher struct {
	jobs       chan job
	provider   Provider
	retryCfg   *retry.Config
	perAttempt time.Duration
	logger     *slog.Logger
}

// NewDispatcher creates a dispatcher with a bounded queue
func NewDispatcher(provider Provider, queueSize int, perAttempt time.Duration, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if perAttempt <= 0 {
		perAttempt = 10 * time.Second
	}
	return &Dispatcher{
		jobs:       make(chan job, queueSize),
		provider:   provider,
		retryCfg:   retry.DefaultConfig(),
		perAttempt: perAttempt,
		logger:     logger,
	}
}

// Start runs the delivery loop until the context is cancelled
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped")
			return
		case j := <-d.jobs:
			d.deliver(ctx, j)
		}
	}
}

// Notify enqueues a message. A full queue drops the job: delivery is
// best-effort by contract.
func (d *Dispatcher) Notify(target Target, message string) {
	if target.Address == "" {
		return
	}
	select {
	case d.jobs <- job{target: target, message: message}:
	default:
		d.logger.Warn("notification queue full, dropping message",
			slog.String("kind", string(target.Kind)),
			slog.String("recipient", target.Address),
		)
		metrics.ObserveNotification(string(target.Kind), "dropped")
	}
}

func (d *Dispatcher) deliver(ctx context.Context, j job) {
	if featureflags.Enabled("notify_dry_run") {
		d.logger.Info("notification suppressed by dry-run flag",
			slog.String("recipient", j.target.Address),
			slog.String("message", j.message),
		)
		return
	}

	_, err := retry.Do(ctx, d.retryCfg, d.logger, "notify", func(ctx context.Context) (struct{}, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, d.perAttempt)
		defer cancel()
		return struct{}{}, d.provider.Send(attemptCtx, j.target, j.message)
	})
	if err != nil {
		// swallowed on purpose: the caller already got its response
		d.logger.Error("notification delivery failed",
			slog.String("kind", string(j.target.Kind)),
			slog.String("recipient", j.target.Address),
			slog.String("error", err.Error()),
		)
		metrics.ObserveNotification(string(j.target.Kind), "failed")
		return
	}

	metrics.ObserveNotification(string(j.target.Kind), "sent")
}
