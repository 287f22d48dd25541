package ports

import (
	"context"
	"time"

	"electionportal/contexts/notifications/webhook-service/domain/entities"
)

type WebhookRepository interface {
	CreateWebhook(ctx context.Context, webhook entities.Webhook) error
	UpdateWebhook(ctx context.Context, webhook entities.Webhook) error
	GetWebhook(ctx context.Context, webhookID string) (entities.Webhook, error)
	ListWebhooks(ctx context.Context) ([]entities.Webhook, error)
	DeleteWebhook(ctx context.Context, webhookID string) error

	// ListForEvent returns the webhooks registered on the election for the
	// given event type. The dispatcher snapshots this set once per event.
	ListForEvent(ctx context.Context, electionID string, eventType entities.WebhookEventType) ([]entities.Webhook, error)
}

type ElectionRef struct {
	ElectionID string
	Name       string
}

// Directory is a read-only projection of data owned by the election-catalog
// and form-intake contexts: which elections a form is attached to, and the
// display names used in delivered payloads.
type Directory interface {
	GetElection(ctx context.Context, electionID string) (ElectionRef, error)
	ListFormElections(ctx context.Context, formID string) ([]ElectionRef, error)
	GetFormName(ctx context.Context, formID string) (string, error)
	GetCustomerName(ctx context.Context, customerID string) (string, error)
}

// FormEvent is the dispatcher's input: a lifecycle transition that has
// already been committed by the form-intake context.
type FormEvent struct {
	EventType   entities.WebhookEventType
	FormID      string
	CustomerID  string
	Data        map[string]any
	SubmittedAt time.Time
	ApprovedAt  *time.Time
}

// DeliveryResult is the outcome of a single HTTP delivery attempt.
type DeliveryResult struct {
	Outcome    entities.DeliveryOutcome
	StatusCode int
	Detail     string
	Duration   time.Duration
}

// Deliverer posts one payload to one endpoint. Implementations must honor
// ctx cancellation and classify the outcome; they never retry.
type Deliverer interface {
	Deliver(ctx context.Context, url string, payload []byte) DeliveryResult
}

// DeliveryLog records attempts for the audit endpoint. Recording failures
// must not affect delivery.
type DeliveryLog interface {
	RecordDelivery(ctx context.Context, record entities.DeliveryRecord) error
	ListDeliveries(ctx context.Context, webhookID string) ([]entities.DeliveryRecord, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
