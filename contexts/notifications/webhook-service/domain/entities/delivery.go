package entities

import "time"

// DeliveryOutcome classifies how a single delivery attempt ended.
type DeliveryOutcome string

const (
	OutcomeSuccess         DeliveryOutcome = "success"
	OutcomeTimeout         DeliveryOutcome = "timeout"
	OutcomeConnectionError DeliveryOutcome = "connection_error"
	OutcomeHTTPError       DeliveryOutcome = "http_error"
)

// DeliveryRecord is the audit trail of one delivery attempt. Delivery is
// at-most-once, so there is exactly one record per (webhook, event) pair.
type DeliveryRecord struct {
	DeliveryID  string
	WebhookID   string
	ElectionID  string
	EventType   WebhookEventType
	URL         string
	Outcome     DeliveryOutcome
	StatusCode  int
	Detail      string
	AttemptedAt time.Time
	Duration    time.Duration
}
