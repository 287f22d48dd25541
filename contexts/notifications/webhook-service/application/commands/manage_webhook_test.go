package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"electionportal/contexts/notifications/webhook-service/domain/entities"
	domainerrors "electionportal/contexts/notifications/webhook-service/domain/errors"
	"electionportal/contexts/notifications/webhook-service/ports"
)

type testWebhooks struct {
	stored map[string]entities.Webhook
}

func (r *testWebhooks) CreateWebhook(_ context.Context, webhook entities.Webhook) error {
	r.stored[webhook.WebhookID] = webhook
	return nil
}

func (r *testWebhooks) UpdateWebhook(_ context.Context, webhook entities.Webhook) error {
	if _, ok := r.stored[webhook.WebhookID]; !ok {
		return domainerrors.ErrWebhookNotFound
	}
	r.stored[webhook.WebhookID] = webhook
	return nil
}

func (r *testWebhooks) GetWebhook(_ context.Context, webhookID string) (entities.Webhook, error) {
	webhook, ok := r.stored[webhookID]
	if !ok {
		return entities.Webhook{}, domainerrors.ErrWebhookNotFound
	}
	return webhook, nil
}

func (r *testWebhooks) ListWebhooks(_ context.Context) ([]entities.Webhook, error) {
	return nil, nil
}

func (r *testWebhooks) DeleteWebhook(_ context.Context, webhookID string) error {
	if _, ok := r.stored[webhookID]; !ok {
		return domainerrors.ErrWebhookNotFound
	}
	delete(r.stored, webhookID)
	return nil
}

func (r *testWebhooks) ListForEvent(_ context.Context, _ string, _ entities.WebhookEventType) ([]entities.Webhook, error) {
	return nil, nil
}

type testDirectory struct {
	elections map[string]ports.ElectionRef
}

func (d *testDirectory) GetElection(_ context.Context, electionID string) (ports.ElectionRef, error) {
	ref, ok := d.elections[electionID]
	if !ok {
		return ports.ElectionRef{}, domainerrors.ErrElectionNotFound
	}
	return ref, nil
}

func (d *testDirectory) ListFormElections(_ context.Context, _ string) ([]ports.ElectionRef, error) {
	return nil, nil
}

func (d *testDirectory) GetFormName(_ context.Context, _ string) (string, error) {
	return "", domainerrors.ErrFormNotFound
}

func (d *testDirectory) GetCustomerName(_ context.Context, _ string) (string, error) {
	return "", domainerrors.ErrCustomerNotFound
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type staticIDs struct {
	id string
}

func (g staticIDs) NewID(_ context.Context) (string, error) {
	return g.id, nil
}

func newManageFixture() (ManageWebhookUseCase, *testWebhooks) {
	webhooks := &testWebhooks{stored: make(map[string]entities.Webhook)}
	uc := ManageWebhookUseCase{
		Webhooks: webhooks,
		Directory: &testDirectory{elections: map[string]ports.ElectionRef{
			"election-1": {ElectionID: "election-1", Name: "City Council 2026"},
		}},
		Clock: fixedClock{now: time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)},
		IDGen: staticIDs{id: "hook-1"},
	}
	return uc, webhooks
}

func TestCreateWebhookPersistsRegistration(t *testing.T) {
	uc, webhooks := newManageFixture()

	created, err := uc.Create(context.Background(), SaveWebhookCommand{
		ElectionID: "election-1",
		EventType:  "form_submitted",
		URL:        "https://receiver.example/hooks",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.WebhookID != "hook-1" {
		t.Fatalf("expected generated id, got %q", created.WebhookID)
	}
	if created.EventType != entities.EventFormSubmitted {
		t.Fatalf("expected form_submitted, got %s", created.EventType)
	}
	if _, ok := webhooks.stored["hook-1"]; !ok {
		t.Fatal("webhook must be persisted")
	}
}

func TestCreateWebhookRejectsBadInput(t *testing.T) {
	uc, _ := newManageFixture()

	cases := []struct {
		name string
		cmd  SaveWebhookCommand
	}{
		{"unknown event type", SaveWebhookCommand{ElectionID: "election-1", EventType: "form_deleted", URL: "https://x.example"}},
		{"relative url", SaveWebhookCommand{ElectionID: "election-1", EventType: "form_submitted", URL: "/hooks"}},
		{"bad scheme", SaveWebhookCommand{ElectionID: "election-1", EventType: "form_submitted", URL: "ftp://x.example"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.cmd)
			if !errors.Is(err, domainerrors.ErrInvalidWebhookInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestCreateWebhookRequiresExistingElection(t *testing.T) {
	uc, _ := newManageFixture()

	_, err := uc.Create(context.Background(), SaveWebhookCommand{
		ElectionID: "ghost",
		EventType:  "form_submitted",
		URL:        "https://receiver.example/hooks",
	})
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected election not found, got %v", err)
	}
}

func TestUpdateWebhookReplacesRegistration(t *testing.T) {
	uc, webhooks := newManageFixture()

	if _, err := uc.Create(context.Background(), SaveWebhookCommand{
		ElectionID: "election-1",
		EventType:  "form_submitted",
		URL:        "https://receiver.example/hooks",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := uc.Update(context.Background(), "hook-1", SaveWebhookCommand{
		ElectionID: "election-1",
		EventType:  "form_approved",
		URL:        "https://receiver.example/approved",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.EventType != entities.EventFormApproved {
		t.Fatalf("expected form_approved after update, got %s", updated.EventType)
	}
	if webhooks.stored["hook-1"].URL != "https://receiver.example/approved" {
		t.Fatalf("expected url updated, got %s", webhooks.stored["hook-1"].URL)
	}
}

func TestUpdateWebhookUnknownID(t *testing.T) {
	uc, _ := newManageFixture()

	_, err := uc.Update(context.Background(), "ghost", SaveWebhookCommand{
		ElectionID: "election-1",
		EventType:  "form_submitted",
		URL:        "https://receiver.example/hooks",
	})
	if !errors.Is(err, domainerrors.ErrWebhookNotFound) {
		t.Fatalf("expected webhook not found, got %v", err)
	}
}
