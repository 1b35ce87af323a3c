// Package webhook handles asynchronous notifications to registered webhook URLs
// when a high-risk assessment is recorded.
//
// Notifications are sent in a goroutine so they never block the HTTP response.
// Failed deliveries are logged and not retried.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"lumina/risk-api/internal/domain"
)

// EventHighRisk is the event name sent in every payload and in the
// X-Lumina-Event header.
const EventHighRisk = "high_risk_assessment"

// Source lists the webhooks to consider for each assessment.
type Source interface {
	ListActiveWebhooks() []*domain.WebhookConfig
}

// Notifier sends webhook payloads to all registered, active endpoints.
type Notifier struct {
	source  Source
	client  *http.Client
	timeout time.Duration
	wg      sync.WaitGroup
}

// New creates a Notifier whose deliveries time out after timeout.
func New(src Source, timeout time.Duration) *Notifier {
	return &Notifier{
		source:  src,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// NotifyAsync fires webhook calls in the background for the given assessment.
// It returns how many deliveries were started.
func (n *Notifier) NotifyAsync(a *domain.Assessment) int {
	started := 0
	for _, wh := range n.source.ListActiveWebhooks() {
		if a.Result.Score < wh.Threshold {
			continue
		}
		started++
		n.wg.Add(1)
		go func(wh *domain.WebhookConfig) {
			defer n.wg.Done()
			if err := n.send(wh, a); err != nil {
				slog.Warn("webhook: delivery failed", "webhook_id", wh.ID, "url", wh.URL, "error", err)
			}
		}(wh)
	}
	return started
}

// Wait blocks until every in-flight delivery has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// send delivers a single webhook call.
func (n *Notifier) send(wh *domain.WebhookConfig, a *domain.Assessment) error {
	payload := domain.WebhookPayload{
		Event:       EventHighRisk,
		TriggeredAt: time.Now().UTC(),
		Assessment:  *a,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Lumina-Event", EventHighRisk)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	slog.Info("webhook: delivered",
		"webhook_id", wh.ID,
		"url", wh.URL,
		"status", resp.StatusCode,
		"assessment_id", a.ID,
		"risk_score", a.Result.Score,
	)
	return nil
}
