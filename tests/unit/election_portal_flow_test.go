package unit

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	electionservice "electionportal/contexts/election-catalog/election-service"
	electionhttp "electionportal/contexts/election-catalog/election-service/transport/http"
	intakeservice "electionportal/contexts/form-intake/intake-service"
	intakeentities "electionportal/contexts/form-intake/intake-service/domain/entities"
	"electionportal/contexts/form-intake/intake-service/domain/schema"
	intakeports "electionportal/contexts/form-intake/intake-service/ports"
	intakehttp "electionportal/contexts/form-intake/intake-service/transport/http"
	webhookservice "electionportal/contexts/notifications/webhook-service"
	webhookentities "electionportal/contexts/notifications/webhook-service/domain/entities"
	webhookports "electionportal/contexts/notifications/webhook-service/ports"
	webhookhttp "electionportal/contexts/notifications/webhook-service/transport/http"
)

type recordingDeliverer struct {
	mu       sync.Mutex
	payloads [][]byte
	result   webhookports.DeliveryResult
}

func (d *recordingDeliverer) Deliver(_ context.Context, _ string, payload []byte) webhookports.DeliveryResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payloads = append(d.payloads, append([]byte(nil), payload...))
	result := d.result
	if result.Outcome == "" {
		result.Outcome = webhookentities.OutcomeSuccess
		result.StatusCode = 200
	}
	return result
}

func (d *recordingDeliverer) captured() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]byte(nil), d.payloads...)
}

// dispatchBridge mirrors the bootstrap wiring of the intake event port onto
// the webhook dispatcher.
type dispatchBridge struct {
	webhooks webhookservice.Module
}

func (b dispatchBridge) PublishSubmissionEvent(ctx context.Context, event intakeports.SubmissionEvent) error {
	eventType := webhookentities.EventFormSubmitted
	if event.Kind == intakeports.SubmissionEventApproved {
		eventType = webhookentities.EventFormApproved
	}
	return b.webhooks.Dispatcher.Dispatch(ctx, webhookports.FormEvent{
		EventType:   eventType,
		FormID:      event.Submission.FormID,
		CustomerID:  event.Submission.CustomerID,
		Data:        event.Submission.Answers,
		SubmittedAt: event.Submission.SubmittedAt,
		ApprovedAt:  event.Submission.ApprovedAt,
	})
}

func surveyForm() intakeentities.Form {
	return intakeentities.Form{
		FormID: "form-1",
		Name:   "Voter survey",
		Schema: schema.Schema{
			{ID: "name", Label: "Name", Type: schema.QuestionTypeText},
			{ID: "district", Label: "District", Type: schema.QuestionTypeDropdown, Options: []string{"north", "south"}},
		},
	}
}

func buildPortal(t *testing.T, deliverer webhookports.Deliverer) (intakeservice.Module, webhookservice.Module) {
	t.Helper()

	webhooks := webhookservice.NewInMemoryModule(deliverer, nil)
	webhooks.Store.SetElection("election-1", "City Council 2026")
	webhooks.Store.AttachForm("form-1", "election-1")
	webhooks.Store.SetForm("form-1", "Voter survey")
	webhooks.Store.SetCustomer("customer-1", "Acme County")

	intake := intakeservice.NewInMemoryModule(
		[]intakeentities.Form{surveyForm()},
		dispatchBridge{webhooks: webhooks},
		nil,
	)
	intake.Store.SetCustomer("customer-1", "Acme County")
	return intake, webhooks
}

func registerPortalWebhook(t *testing.T, webhooks webhookservice.Module, eventType string) webhookhttp.WebhookResponse {
	t.Helper()
	resp, err := webhooks.Handler.CreateWebhookHandler(context.Background(), webhookhttp.SaveWebhookRequest{
		ElectionID: "election-1",
		EventType:  eventType,
		URL:        "https://receiver.example/hooks",
	})
	if err != nil {
		t.Fatalf("register webhook failed: %v", err)
	}
	return resp
}

func drainDispatcher(t *testing.T, webhooks webhookservice.Module) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := webhooks.Dispatcher.Drain(ctx); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
}

func TestSubmitThenApproveNotifiesWebhooks(t *testing.T) {
	deliverer := &recordingDeliverer{}
	intake, webhooks := buildPortal(t, deliverer)
	registerPortalWebhook(t, webhooks, "form_submitted")
	registerPortalWebhook(t, webhooks, "form_approved")

	submitted, err := intake.Handler.SubmitFormHandler(context.Background(), intakehttp.SubmitFormRequest{
		FormID:     "form-1",
		CustomerID: "customer-1",
		Answers:    map[string]any{"name": "Jordan", "district": "north"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Submission.Status != string(intakeentities.SubmissionStatusSubmitted) {
		t.Fatalf("expected submitted, got %s", submitted.Submission.Status)
	}
	drainDispatcher(t, webhooks)

	approved, err := intake.Handler.ApproveSubmissionHandler(context.Background(), submitted.Submission.SubmissionID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Submission.ApprovedAt == "" {
		t.Fatal("approved submission must carry approved_at")
	}
	drainDispatcher(t, webhooks)

	payloads := deliverer.captured()
	if len(payloads) != 2 {
		t.Fatalf("expected one delivery per lifecycle event, got %d", len(payloads))
	}

	events := make(map[string]bool)
	for _, raw := range payloads {
		var payload struct {
			Event    string  `json:"event"`
			Election string  `json:"election"`
			Customer *string `json:"customer"`
			Form     *string `json:"form"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("payload decode failed: %v", err)
		}
		if payload.Election != "City Council 2026" {
			t.Fatalf("expected election name in payload, got %q", payload.Election)
		}
		if payload.Customer == nil || *payload.Customer != "Acme County" {
			t.Fatalf("expected customer name, got %v", payload.Customer)
		}
		if payload.Form == nil || *payload.Form != "Voter survey" {
			t.Fatalf("expected form name, got %v", payload.Form)
		}
		events[payload.Event] = true
	}
	if !events["form_submitted"] || !events["form_approved"] {
		t.Fatalf("expected both lifecycle events delivered, got %v", events)
	}
}

func TestSubmitRejectsInvalidAnswersWithFieldList(t *testing.T) {
	deliverer := &recordingDeliverer{}
	intake, webhooks := buildPortal(t, deliverer)
	registerPortalWebhook(t, webhooks, "form_submitted")

	_, err := intake.Handler.SubmitFormHandler(context.Background(), intakehttp.SubmitFormRequest{
		FormID:     "form-1",
		CustomerID: "customer-1",
		Answers:    map[string]any{"district": "east"},
	})
	if err == nil {
		t.Fatal("expected validation rejection")
	}
	drainDispatcher(t, webhooks)

	if len(deliverer.captured()) != 0 {
		t.Fatal("rejected submission must not trigger deliveries")
	}

	listed, listErr := intake.Handler.ListSubmissionsHandler(context.Background(), "form-1", "", "")
	if listErr != nil {
		t.Fatalf("list failed: %v", listErr)
	}
	if len(listed.Items) != 0 {
		t.Fatal("rejected submission must not be persisted")
	}
}

func TestApproveSucceedsWhenWebhookEndpointFails(t *testing.T) {
	deliverer := &recordingDeliverer{result: webhookports.DeliveryResult{
		Outcome: webhookentities.OutcomeConnectionError,
		Detail:  "connection refused",
	}}
	intake, webhooks := buildPortal(t, deliverer)
	hook := registerPortalWebhook(t, webhooks, "form_approved")

	submitted, err := intake.Handler.SubmitFormHandler(context.Background(), intakehttp.SubmitFormRequest{
		FormID:     "form-1",
		CustomerID: "customer-1",
		Answers:    map[string]any{"name": "Jordan", "district": "south"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := intake.Handler.ApproveSubmissionHandler(context.Background(), submitted.Submission.SubmissionID)
	if err != nil {
		t.Fatalf("approve must not depend on delivery outcome: %v", err)
	}
	if approved.Submission.Status != string(intakeentities.SubmissionStatusApproved) {
		t.Fatalf("expected approved, got %s", approved.Submission.Status)
	}
	drainDispatcher(t, webhooks)

	deliveries, err := webhooks.Handler.ListDeliveriesHandler(context.Background(), hook.Webhook.WebhookID)
	if err != nil {
		t.Fatalf("list deliveries failed: %v", err)
	}
	if len(deliveries.Items) != 1 {
		t.Fatalf("expected one recorded attempt, got %d", len(deliveries.Items))
	}
	if deliveries.Items[0].Outcome != string(webhookentities.OutcomeConnectionError) {
		t.Fatalf("expected connection_error outcome, got %s", deliveries.Items[0].Outcome)
	}
}

func TestElectionCatalogReplaceSetFlow(t *testing.T) {
	election := electionservice.NewInMemoryModule(nil)
	election.Store.SetForm("form-1", "Voter survey")

	created, err := election.Handler.CreateElectionHandler(context.Background(), electionhttp.SaveElectionRequest{
		Name:  "City Council 2026",
		Type:  "municipal",
		State: "CA",
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}

	customer, err := election.Handler.CreateCustomerHandler(context.Background(), electionhttp.CreateCustomerRequest{Name: "Acme County"})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	assigned, err := election.Handler.AssignCustomersHandler(
		context.Background(),
		created.Election.ElectionID,
		electionhttp.AssignCustomersRequest{CustomerIDs: []string{customer.Customer.CustomerID, "ghost"}},
	)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if len(assigned.KeptIDs) != 1 || assigned.KeptIDs[0] != customer.Customer.CustomerID {
		t.Fatalf("expected unknown ids dropped, got %v", assigned.KeptIDs)
	}

	attached, err := election.Handler.AttachFormsHandler(
		context.Background(),
		created.Election.ElectionID,
		electionhttp.AttachFormsRequest{FormIDs: []string{"form-1"}},
	)
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if len(attached.KeptIDs) != 1 {
		t.Fatalf("expected form kept, got %v", attached.KeptIDs)
	}

	detail, err := election.Handler.GetElectionHandler(context.Background(), created.Election.ElectionID)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if len(detail.Customers) != 1 || len(detail.Forms) != 1 {
		t.Fatalf("expected aggregated detail, got %+v", detail)
	}
}
