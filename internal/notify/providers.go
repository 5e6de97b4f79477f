package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/shiftline/internal/reliability/circuitbreaker"
)

// Provider performs a single delivery attempt.
type Provider interface {
	Send(ctx context.Context, target Target, message string) error
}

// NewProvider picks the delivery backend: a webhook when a URL is
// configured, otherwise log-only delivery.
func NewProvider(webhookURL string, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if webhookURL == "" {
		return &LogProvider{logger: logger}
	}
	return NewWebhookProvider(webhookURL, logger)
}

// LogProvider "delivers" by writing a log line. Default in development
// and whenever no webhook is configured.
type LogProvider struct {
	logger *slog.Logger
}

// Send logs the message
func (p *LogProvider) Send(_ context.Context, target Target, message string) error {
	p.logger.Info("notification",
		slog.String("kind", string(target.Kind)),
		slog.String("recipient", target.Address),
		slog.String("message", message),
	)
	return nil
}

// WebhookProvider posts messages to an external gateway. A circuit
// breaker fast-fails attempts while the gateway is down so the
// dispatcher queue doesn't burn its retries against a dead endpoint.
type WebhookProvider struct {
	url     string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewWebhookProvider creates a webhook provider
func NewWebhookProvider(url string, logger *slog.Logger) *WebhookProvider {
	return &WebhookProvider{
		url:     url,
		client:  &http.Client{},
		breaker: circuitbreaker.NewCircuitBreaker(5, 2, 30*time.Second),
		logger:  logger,
	}
}

// Send posts the message to the configured webhook
func (p *WebhookProvider) Send(ctx context.Context, target Target, message string) error {
	if !p.breaker.AllowRequest() {
		return errors.New("notification gateway circuit open")
	}

	payload := map[string]string{
		"kind":      string(target.Kind),
		"recipient": target.Address,
		"message":   message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.breaker.RecordFailure()
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		p.breaker.RecordFailure()
		return fmt.Errorf("notification gateway returned %d", resp.StatusCode)
	}

	p.breaker.RecordSuccess()
	return nil
}
