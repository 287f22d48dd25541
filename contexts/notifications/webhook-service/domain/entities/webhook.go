package entities

import "time"

// WebhookEventType is the lifecycle event a webhook subscribes to. The value
// doubles as the "event" field of the delivered payload.
type WebhookEventType string

const (
	EventFormSubmitted WebhookEventType = "form_submitted"
	EventFormApproved  WebhookEventType = "form_approved"
)

// Webhook is a registered subscriber endpoint, scoped to one election and one
// event type.
type Webhook struct {
	WebhookID      string
	ElectionID     string
	EventType      WebhookEventType
	URL            string
	ExamplePayload string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
