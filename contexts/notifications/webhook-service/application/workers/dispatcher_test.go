package workers

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"electionportal/contexts/notifications/webhook-service/adapters/memory"
	"electionportal/contexts/notifications/webhook-service/domain/entities"
	"electionportal/contexts/notifications/webhook-service/ports"
)

type capturedDelivery struct {
	URL     string
	Payload []byte
}

type captureDeliverer struct {
	mu         sync.Mutex
	deliveries []capturedDelivery
	result     ports.DeliveryResult

	inFlight    int
	maxInFlight int
	delay       time.Duration
}

func (d *captureDeliverer) Deliver(_ context.Context, url string, payload []byte) ports.DeliveryResult {
	d.mu.Lock()
	d.inFlight++
	if d.inFlight > d.maxInFlight {
		d.maxInFlight = d.inFlight
	}
	d.mu.Unlock()

	if d.delay > 0 {
		time.Sleep(d.delay)
	}

	d.mu.Lock()
	d.inFlight--
	d.deliveries = append(d.deliveries, capturedDelivery{URL: url, Payload: append([]byte(nil), payload...)})
	d.mu.Unlock()

	result := d.result
	if result.Outcome == "" {
		result.Outcome = entities.OutcomeSuccess
		result.StatusCode = 200
	}
	return result
}

func (d *captureDeliverer) captured() []capturedDelivery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]capturedDelivery(nil), d.deliveries...)
}

func seedDirectory(store *memory.Store) {
	store.SetElection("election-1", "City Council 2026")
	store.SetElection("election-2", "School Board 2026")
	store.AttachForm("form-1", "election-1")
	store.AttachForm("form-1", "election-2")
	store.SetForm("form-1", "Voter survey")
	store.SetCustomer("customer-1", "Acme County")
}

func registerWebhook(t *testing.T, store *memory.Store, webhookID string, electionID string, eventType entities.WebhookEventType) {
	t.Helper()
	err := store.CreateWebhook(context.Background(), entities.Webhook{
		WebhookID:  webhookID,
		ElectionID: electionID,
		EventType:  eventType,
		URL:        "https://receiver.example/" + webhookID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("register webhook failed: %v", err)
	}
}

func newTestDispatcher(store *memory.Store, deliverer ports.Deliverer, cfg DispatcherConfig) *Dispatcher {
	return NewDispatcher(cfg, store, store, deliverer, store, store, store, nil)
}

func drain(t *testing.T, dispatcher *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dispatcher.Drain(ctx); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
}

func submittedEvent() ports.FormEvent {
	return ports.FormEvent{
		EventType:   entities.EventFormSubmitted,
		FormID:      "form-1",
		CustomerID:  "customer-1",
		Data:        map[string]any{"name": "Jordan"},
		SubmittedAt: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestDispatchFansOutToEveryAttachedElection(t *testing.T) {
	store := memory.NewStore()
	seedDirectory(store)
	registerWebhook(t, store, "hook-1", "election-1", entities.EventFormSubmitted)
	registerWebhook(t, store, "hook-2", "election-2", entities.EventFormSubmitted)

	deliverer := &captureDeliverer{}
	dispatcher := newTestDispatcher(store, deliverer, DispatcherConfig{})

	if err := dispatcher.Dispatch(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	drain(t, dispatcher)

	captured := deliverer.captured()
	if len(captured) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(captured))
	}

	elections := make(map[string]bool)
	for _, delivery := range captured {
		var payload struct {
			Event       string         `json:"event"`
			Election    string         `json:"election"`
			Customer    *string        `json:"customer"`
			Form        *string        `json:"form"`
			Data        map[string]any `json:"data"`
			SubmittedAt time.Time      `json:"submittedAt"`
			ApprovedAt  *time.Time     `json:"approvedAt"`
		}
		if err := json.Unmarshal(delivery.Payload, &payload); err != nil {
			t.Fatalf("payload decode failed: %v", err)
		}
		if payload.Event != "form_submitted" {
			t.Fatalf("expected form_submitted event, got %q", payload.Event)
		}
		if payload.Customer == nil || *payload.Customer != "Acme County" {
			t.Fatalf("expected customer name, got %v", payload.Customer)
		}
		if payload.Form == nil || *payload.Form != "Voter survey" {
			t.Fatalf("expected form name, got %v", payload.Form)
		}
		if payload.ApprovedAt != nil {
			t.Fatal("submitted event must not carry approvedAt")
		}
		if payload.Data["name"] != "Jordan" {
			t.Fatalf("expected answer data, got %v", payload.Data)
		}
		elections[payload.Election] = true
	}
	if !elections["City Council 2026"] || !elections["School Board 2026"] {
		t.Fatalf("expected one delivery per election, got %v", elections)
	}
}

func TestDispatchAttemptsEachWebhookExactlyOnce(t *testing.T) {
	store := memory.NewStore()
	seedDirectory(store)
	registerWebhook(t, store, "hook-1", "election-1", entities.EventFormSubmitted)
	registerWebhook(t, store, "hook-2", "election-1", entities.EventFormSubmitted)
	registerWebhook(t, store, "hook-3", "election-2", entities.EventFormSubmitted)

	deliverer := &captureDeliverer{result: ports.DeliveryResult{
		Outcome:    entities.OutcomeHTTPError,
		StatusCode: 500,
		Detail:     "endpoint returned 500 Internal Server Error",
	}}
	dispatcher := newTestDispatcher(store, deliverer, DispatcherConfig{})

	if err := dispatcher.Dispatch(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	drain(t, dispatcher)

	seen := make(map[string]int)
	for _, delivery := range deliverer.captured() {
		seen[delivery.URL]++
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct targets, got %d", len(seen))
	}
	for url, count := range seen {
		if count != 1 {
			t.Fatalf("expected exactly one attempt for %s, got %d", url, count)
		}
	}
}

func TestDispatchFiltersByEventType(t *testing.T) {
	store := memory.NewStore()
	seedDirectory(store)
	registerWebhook(t, store, "hook-submitted", "election-1", entities.EventFormSubmitted)
	registerWebhook(t, store, "hook-approved", "election-1", entities.EventFormApproved)

	deliverer := &captureDeliverer{}
	dispatcher := newTestDispatcher(store, deliverer, DispatcherConfig{})

	approvedAt := time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)
	event := submittedEvent()
	event.EventType = entities.EventFormApproved
	event.ApprovedAt = &approvedAt

	if err := dispatcher.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	drain(t, dispatcher)

	captured := deliverer.captured()
	if len(captured) != 1 {
		t.Fatalf("expected only the approved webhook, got %d deliveries", len(captured))
	}
	if captured[0].URL != "https://receiver.example/hook-approved" {
		t.Fatalf("expected approved hook target, got %s", captured[0].URL)
	}

	var payload struct {
		Event      string     `json:"event"`
		ApprovedAt *time.Time `json:"approvedAt"`
	}
	if err := json.Unmarshal(captured[0].Payload, &payload); err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if payload.Event != "form_approved" {
		t.Fatalf("expected form_approved event, got %q", payload.Event)
	}
	if payload.ApprovedAt == nil || !payload.ApprovedAt.Equal(approvedAt) {
		t.Fatalf("expected approvedAt %v, got %v", approvedAt, payload.ApprovedAt)
	}
}

func TestDispatchUnattachedFormDeliversNothing(t *testing.T) {
	store := memory.NewStore()
	store.SetForm("form-orphan", "Orphan form")
	store.SetCustomer("customer-1", "Acme County")

	deliverer := &captureDeliverer{}
	dispatcher := newTestDispatcher(store, deliverer, DispatcherConfig{})

	event := submittedEvent()
	event.FormID = "form-orphan"
	if err := dispatcher.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("unattached form must not error: %v", err)
	}
	drain(t, dispatcher)

	if len(deliverer.captured()) != 0 {
		t.Fatal("unattached form must produce zero deliveries")
	}
}

func TestDispatchRecordsDeliveryOutcomes(t *testing.T) {
	store := memory.NewStore()
	seedDirectory(store)
	registerWebhook(t, store, "hook-1", "election-1", entities.EventFormSubmitted)

	deliverer := &captureDeliverer{result: ports.DeliveryResult{
		Outcome: entities.OutcomeTimeout,
		Detail:  "context deadline exceeded",
	}}
	dispatcher := newTestDispatcher(store, deliverer, DispatcherConfig{})

	if err := dispatcher.Dispatch(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	drain(t, dispatcher)

	records, err := store.ListDeliveries(context.Background(), "hook-1")
	if err != nil {
		t.Fatalf("list deliveries failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one delivery record, got %d", len(records))
	}
	if records[0].Outcome != entities.OutcomeTimeout {
		t.Fatalf("expected timeout outcome, got %s", records[0].Outcome)
	}
	if records[0].WebhookID != "hook-1" {
		t.Fatalf("expected record for hook-1, got %s", records[0].WebhookID)
	}
}

func TestDispatchBoundsConcurrentDeliveries(t *testing.T) {
	store := memory.NewStore()
	seedDirectory(store)
	for _, id := range []string{"hook-1", "hook-2", "hook-3", "hook-4", "hook-5", "hook-6"} {
		registerWebhook(t, store, id, "election-1", entities.EventFormSubmitted)
	}

	deliverer := &captureDeliverer{delay: 20 * time.Millisecond}
	dispatcher := newTestDispatcher(store, deliverer, DispatcherConfig{MaxInFlight: 2})

	if err := dispatcher.Dispatch(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	drain(t, dispatcher)

	if len(deliverer.captured()) != 6 {
		t.Fatalf("expected 6 deliveries, got %d", len(deliverer.captured()))
	}
	deliverer.mu.Lock()
	maxInFlight := deliverer.maxInFlight
	deliverer.mu.Unlock()
	if maxInFlight > 2 {
		t.Fatalf("expected at most 2 concurrent deliveries, observed %d", maxInFlight)
	}
}

func TestDispatchOutlivesCallerContext(t *testing.T) {
	store := memory.NewStore()
	seedDirectory(store)
	registerWebhook(t, store, "hook-1", "election-1", entities.EventFormSubmitted)

	deliverer := &captureDeliverer{delay: 10 * time.Millisecond}
	dispatcher := newTestDispatcher(store, deliverer, DispatcherConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	if err := dispatcher.Dispatch(ctx, submittedEvent()); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	cancel()
	drain(t, dispatcher)

	if len(deliverer.captured()) != 1 {
		t.Fatal("delivery must complete after the caller's context is cancelled")
	}
}
