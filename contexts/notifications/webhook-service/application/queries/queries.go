package queries

import (
	"context"
	"strings"

	"electionportal/contexts/notifications/webhook-service/domain/entities"
	"electionportal/contexts/notifications/webhook-service/ports"
)

type QueryUseCase struct {
	Webhooks   ports.WebhookRepository
	Deliveries ports.DeliveryLog
}

func (uc QueryUseCase) GetWebhook(ctx context.Context, webhookID string) (entities.Webhook, error) {
	return uc.Webhooks.GetWebhook(ctx, strings.TrimSpace(webhookID))
}

func (uc QueryUseCase) ListWebhooks(ctx context.Context) ([]entities.Webhook, error) {
	return uc.Webhooks.ListWebhooks(ctx)
}

// ListDeliveries returns the audit trail for one webhook, newest first. The
// webhook must exist; an empty trail is not an error.
func (uc QueryUseCase) ListDeliveries(ctx context.Context, webhookID string) ([]entities.DeliveryRecord, error) {
	if _, err := uc.Webhooks.GetWebhook(ctx, strings.TrimSpace(webhookID)); err != nil {
		return nil, err
	}
	// Audit recording can be disabled, in which case the trail is empty.
	if uc.Deliveries == nil {
		return nil, nil
	}
	return uc.Deliveries.ListDeliveries(ctx, strings.TrimSpace(webhookID))
}
