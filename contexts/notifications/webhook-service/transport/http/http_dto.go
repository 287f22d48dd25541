package http

// ErrorResponse is the generic error body for the webhook endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SaveWebhookRequest struct {
	ElectionID     string `json:"election_id"`
	EventType      string `json:"event_type"`
	URL            string `json:"url"`
	ExamplePayload string `json:"example_payload,omitempty"`
}

type WebhookDTO struct {
	WebhookID      string `json:"webhook_id"`
	ElectionID     string `json:"election_id"`
	EventType      string `json:"event_type"`
	URL            string `json:"url"`
	ExamplePayload string `json:"example_payload,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type WebhookResponse struct {
	Webhook WebhookDTO `json:"webhook"`
}

type ListWebhooksResponse struct {
	Items []WebhookDTO `json:"items"`
}

type DeliveryDTO struct {
	DeliveryID  string `json:"delivery_id"`
	WebhookID   string `json:"webhook_id"`
	ElectionID  string `json:"election_id"`
	EventType   string `json:"event_type"`
	URL         string `json:"url"`
	Outcome     string `json:"outcome"`
	StatusCode  int    `json:"status_code,omitempty"`
	Detail      string `json:"detail,omitempty"`
	AttemptedAt string `json:"attempted_at"`
	DurationMS  int64  `json:"duration_ms"`
}

type ListDeliveriesResponse struct {
	Items []DeliveryDTO `json:"items"`
}

// TestEchoResponse is returned by the loopback endpoint used to try out
// webhook payloads without an external receiver.
type TestEchoResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload"`
}
