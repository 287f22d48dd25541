package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	application "electionportal/contexts/notifications/webhook-service/application"
	"electionportal/contexts/notifications/webhook-service/domain/entities"
	domainerrors "electionportal/contexts/notifications/webhook-service/domain/errors"
	"electionportal/contexts/notifications/webhook-service/ports"
)

type SaveWebhookCommand struct {
	ElectionID     string
	EventType      string
	URL            string
	ExamplePayload string
}

type ManageWebhookUseCase struct {
	Webhooks  ports.WebhookRepository
	Directory ports.Directory
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ManageWebhookUseCase) Create(ctx context.Context, cmd SaveWebhookCommand) (entities.Webhook, error) {
	logger := application.ResolveLogger(uc.Logger)

	eventType, endpoint, err := validateWebhookInput(cmd)
	if err != nil {
		return entities.Webhook{}, err
	}
	if _, err := uc.Directory.GetElection(ctx, strings.TrimSpace(cmd.ElectionID)); err != nil {
		return entities.Webhook{}, err
	}

	webhookID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Webhook{}, err
	}
	now := uc.Clock.Now().UTC()
	webhook := entities.Webhook{
		WebhookID:      webhookID,
		ElectionID:     strings.TrimSpace(cmd.ElectionID),
		EventType:      eventType,
		URL:            endpoint,
		ExamplePayload: cmd.ExamplePayload,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.Webhooks.CreateWebhook(ctx, webhook); err != nil {
		return entities.Webhook{}, err
	}

	logger.Info("webhook registered",
		"event", "webhook_registered",
		"module", "notifications/webhook-service",
		"layer", "application",
		"webhook_id", webhook.WebhookID,
		"election_id", webhook.ElectionID,
		"event_type", string(webhook.EventType),
	)
	return webhook, nil
}

func (uc ManageWebhookUseCase) Update(ctx context.Context, webhookID string, cmd SaveWebhookCommand) (entities.Webhook, error) {
	webhook, err := uc.Webhooks.GetWebhook(ctx, strings.TrimSpace(webhookID))
	if err != nil {
		return entities.Webhook{}, err
	}

	eventType, endpoint, err := validateWebhookInput(cmd)
	if err != nil {
		return entities.Webhook{}, err
	}
	if _, err := uc.Directory.GetElection(ctx, strings.TrimSpace(cmd.ElectionID)); err != nil {
		return entities.Webhook{}, err
	}

	webhook.ElectionID = strings.TrimSpace(cmd.ElectionID)
	webhook.EventType = eventType
	webhook.URL = endpoint
	webhook.ExamplePayload = cmd.ExamplePayload
	webhook.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Webhooks.UpdateWebhook(ctx, webhook); err != nil {
		return entities.Webhook{}, err
	}
	return webhook, nil
}

func (uc ManageWebhookUseCase) Delete(ctx context.Context, webhookID string) error {
	return uc.Webhooks.DeleteWebhook(ctx, strings.TrimSpace(webhookID))
}

func validateWebhookInput(cmd SaveWebhookCommand) (entities.WebhookEventType, string, error) {
	eventType := entities.WebhookEventType(strings.TrimSpace(cmd.EventType))
	switch eventType {
	case entities.EventFormSubmitted, entities.EventFormApproved:
	default:
		return "", "", fmt.Errorf("%w: unknown event type %q", domainerrors.ErrInvalidWebhookInput, cmd.EventType)
	}

	endpoint := strings.TrimSpace(cmd.URL)
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", "", fmt.Errorf("%w: url must be absolute http or https", domainerrors.ErrInvalidWebhookInput)
	}
	return eventType, endpoint, nil
}
