package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	application "electionportal/contexts/notifications/webhook-service/application"
	"electionportal/contexts/notifications/webhook-service/domain/entities"
	"electionportal/contexts/notifications/webhook-service/ports"

	"golang.org/x/sync/semaphore"
)

const (
	defaultDeliveryTimeout = 10 * time.Second
	defaultMaxInFlight     = 16
)

// Dispatcher fans a committed form event out to every webhook registered on
// the elections the form is attached to. Delivery is best effort and
// at-most-once: each matching webhook gets exactly one attempt, failures are
// recorded and never retried, and no delivery outcome propagates back to the
// caller.
type Dispatcher struct {
	Webhooks   ports.WebhookRepository
	Directory  ports.Directory
	Deliverer  ports.Deliverer
	Deliveries ports.DeliveryLog
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger

	timeout time.Duration
	sem     *semaphore.Weighted
	wg      sync.WaitGroup
}

type DispatcherConfig struct {
	// DeliveryTimeout bounds a single HTTP attempt.
	DeliveryTimeout time.Duration
	// MaxInFlight bounds concurrent deliveries across all events.
	MaxInFlight int64
}

func NewDispatcher(
	cfg DispatcherConfig,
	webhooks ports.WebhookRepository,
	directory ports.Directory,
	deliverer ports.Deliverer,
	deliveries ports.DeliveryLog,
	clock ports.Clock,
	idGen ports.IDGenerator,
	logger *slog.Logger,
) *Dispatcher {
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	maxInFlight := cfg.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &Dispatcher{
		Webhooks:   webhooks,
		Directory:  directory,
		Deliverer:  deliverer,
		Deliveries: deliveries,
		Clock:      clock,
		IDGen:      idGen,
		Logger:     logger,
		timeout:    timeout,
		sem:        semaphore.NewWeighted(maxInFlight),
	}
}

// deliveryPayload is the wire body posted to subscriber endpoints.
type deliveryPayload struct {
	Event       string         `json:"event"`
	Election    string         `json:"election"`
	Customer    *string        `json:"customer"`
	Form        *string        `json:"form"`
	Data        map[string]any `json:"data"`
	SubmittedAt time.Time      `json:"submittedAt"`
	ApprovedAt  *time.Time     `json:"approvedAt"`
}

// Dispatch resolves the fan-out set for the event and launches one delivery
// goroutine per matching webhook. It returns once all deliveries are
// launched; it never blocks on their completion. A form attached to no
// election yields zero deliveries and no error.
func (d *Dispatcher) Dispatch(ctx context.Context, event ports.FormEvent) error {
	logger := application.ResolveLogger(d.Logger)

	elections, err := d.Directory.ListFormElections(ctx, event.FormID)
	if err != nil {
		logger.Error("webhook fan-out resolution failed",
			"event", "webhook_fanout_failed",
			"module", "notifications/webhook-service",
			"layer", "worker",
			"form_id", event.FormID,
			"error", err.Error(),
		)
		return err
	}
	if len(elections) == 0 {
		logger.Debug("form attached to no election, nothing to deliver",
			"event", "webhook_fanout_empty",
			"module", "notifications/webhook-service",
			"layer", "worker",
			"form_id", event.FormID,
		)
		return nil
	}

	formName := d.lookupName(ctx, event.FormID, d.Directory.GetFormName)
	customerName := d.lookupName(ctx, event.CustomerID, d.Directory.GetCustomerName)

	launched := 0
	for _, election := range elections {
		targets, err := d.Webhooks.ListForEvent(ctx, election.ElectionID, event.EventType)
		if err != nil {
			logger.Error("webhook listing failed",
				"event", "webhook_listing_failed",
				"module", "notifications/webhook-service",
				"layer", "worker",
				"election_id", election.ElectionID,
				"error", err.Error(),
			)
			continue
		}
		if len(targets) == 0 {
			continue
		}

		body, err := json.Marshal(deliveryPayload{
			Event:       string(event.EventType),
			Election:    election.Name,
			Customer:    customerName,
			Form:        formName,
			Data:        event.Data,
			SubmittedAt: event.SubmittedAt.UTC(),
			ApprovedAt:  event.ApprovedAt,
		})
		if err != nil {
			logger.Error("webhook payload encoding failed",
				"event", "webhook_payload_encode_failed",
				"module", "notifications/webhook-service",
				"layer", "worker",
				"election_id", election.ElectionID,
				"error", err.Error(),
			)
			continue
		}

		for _, target := range targets {
			d.launch(ctx, target, body)
			launched++
		}
	}

	logger.Info("webhook fan-out launched",
		"event", "webhook_fanout_launched",
		"module", "notifications/webhook-service",
		"layer", "worker",
		"form_id", event.FormID,
		"event_type", string(event.EventType),
		"election_count", len(elections),
		"delivery_count", launched,
	)
	return nil
}

// launch hands one delivery to a goroutine gated by the in-flight semaphore.
// The delivery runs on a context detached from the caller, so finishing the
// originating request never cancels it.
func (d *Dispatcher) launch(ctx context.Context, target entities.Webhook, body []byte) {
	base := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.sem.Acquire(base, 1); err != nil {
			return
		}
		defer d.sem.Release(1)
		d.deliver(base, target, body)
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, target entities.Webhook, body []byte) {
	logger := application.ResolveLogger(d.Logger)

	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	attemptedAt := d.Clock.Now().UTC()
	result := d.Deliverer.Deliver(attemptCtx, target.URL, body)

	if result.Outcome == entities.OutcomeSuccess {
		logger.Info("webhook delivered",
			"event", "webhook_delivered",
			"module", "notifications/webhook-service",
			"layer", "worker",
			"webhook_id", target.WebhookID,
			"status_code", result.StatusCode,
			"duration_ms", result.Duration.Milliseconds(),
		)
	} else {
		logger.Warn("webhook delivery failed",
			"event", "webhook_delivery_failed",
			"module", "notifications/webhook-service",
			"layer", "worker",
			"webhook_id", target.WebhookID,
			"outcome", string(result.Outcome),
			"status_code", result.StatusCode,
			"detail", result.Detail,
		)
	}

	d.record(ctx, target, result, attemptedAt)
}

func (d *Dispatcher) record(ctx context.Context, target entities.Webhook, result ports.DeliveryResult, attemptedAt time.Time) {
	if d.Deliveries == nil {
		return
	}
	logger := application.ResolveLogger(d.Logger)

	deliveryID, err := d.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("delivery id generation failed",
			"event", "webhook_delivery_record_failed",
			"module", "notifications/webhook-service",
			"layer", "worker",
			"webhook_id", target.WebhookID,
			"error", err.Error(),
		)
		return
	}
	record := entities.DeliveryRecord{
		DeliveryID:  deliveryID,
		WebhookID:   target.WebhookID,
		ElectionID:  target.ElectionID,
		EventType:   target.EventType,
		URL:         target.URL,
		Outcome:     result.Outcome,
		StatusCode:  result.StatusCode,
		Detail:      result.Detail,
		AttemptedAt: attemptedAt,
		Duration:    result.Duration,
	}
	if err := d.Deliveries.RecordDelivery(ctx, record); err != nil {
		logger.Error("delivery record write failed",
			"event", "webhook_delivery_record_failed",
			"module", "notifications/webhook-service",
			"layer", "worker",
			"webhook_id", target.WebhookID,
			"error", err.Error(),
		)
	}
}

func (d *Dispatcher) lookupName(ctx context.Context, id string, lookup func(context.Context, string) (string, error)) *string {
	if id == "" {
		return nil
	}
	name, err := lookup(ctx, id)
	if err != nil {
		return nil
	}
	return &name
}

// Drain blocks until every in-flight delivery finishes or ctx expires. Used
// during shutdown; deliveries themselves still honor their own timeout.
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
