package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"electionportal/contexts/notifications/webhook-service/domain/entities"
	"electionportal/contexts/notifications/webhook-service/ports"
)

// Deliverer posts payloads over HTTP. Timeouts come from the caller's
// context; the client itself has no deadline so the dispatcher stays in
// control of the budget.
type Deliverer struct {
	client *http.Client
}

func NewDeliverer() *Deliverer {
	return &Deliverer{
		client: &http.Client{},
	}
}

func NewDelivererWithClient(client *http.Client) *Deliverer {
	if client == nil {
		client = &http.Client{}
	}
	return &Deliverer{client: client}
}

func (d *Deliverer) Deliver(ctx context.Context, url string, payload []byte) ports.DeliveryResult {
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return ports.DeliveryResult{
			Outcome:  entities.OutcomeConnectionError,
			Detail:   err.Error(),
			Duration: time.Since(started),
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return ports.DeliveryResult{
			Outcome:  classifyTransportError(err),
			Detail:   err.Error(),
			Duration: time.Since(started),
		}
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	result := ports.DeliveryResult{
		StatusCode: resp.StatusCode,
		Duration:   time.Since(started),
	}
	// Anything outside 2xx is a failed delivery, including redirects the
	// client did not follow.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Outcome = entities.OutcomeHTTPError
		result.Detail = fmt.Sprintf("endpoint returned %s", resp.Status)
		return result
	}
	result.Outcome = entities.OutcomeSuccess
	return result
}

func classifyTransportError(err error) entities.DeliveryOutcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return entities.OutcomeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return entities.OutcomeTimeout
	}
	return entities.OutcomeConnectionError
}
