package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"electionportal/contexts/notifications/webhook-service/application/commands"
	"electionportal/contexts/notifications/webhook-service/application/queries"
	"electionportal/contexts/notifications/webhook-service/domain/entities"
	httptransport "electionportal/contexts/notifications/webhook-service/transport/http"
)

type Handler struct {
	ManageWebhook commands.ManageWebhookUseCase
	Queries       queries.QueryUseCase
	Clock         interface{ Now() time.Time }
	Logger        *slog.Logger
}

func (h Handler) CreateWebhookHandler(ctx context.Context, req httptransport.SaveWebhookRequest) (httptransport.WebhookResponse, error) {
	item, err := h.ManageWebhook.Create(ctx, commands.SaveWebhookCommand{
		ElectionID:     req.ElectionID,
		EventType:      req.EventType,
		URL:            req.URL,
		ExamplePayload: req.ExamplePayload,
	})
	if err != nil {
		return httptransport.WebhookResponse{}, err
	}
	return httptransport.WebhookResponse{Webhook: mapWebhook(item)}, nil
}

func (h Handler) UpdateWebhookHandler(ctx context.Context, webhookID string, req httptransport.SaveWebhookRequest) (httptransport.WebhookResponse, error) {
	item, err := h.ManageWebhook.Update(ctx, webhookID, commands.SaveWebhookCommand{
		ElectionID:     req.ElectionID,
		EventType:      req.EventType,
		URL:            req.URL,
		ExamplePayload: req.ExamplePayload,
	})
	if err != nil {
		return httptransport.WebhookResponse{}, err
	}
	return httptransport.WebhookResponse{Webhook: mapWebhook(item)}, nil
}

func (h Handler) DeleteWebhookHandler(ctx context.Context, webhookID string) error {
	return h.ManageWebhook.Delete(ctx, webhookID)
}

func (h Handler) GetWebhookHandler(ctx context.Context, webhookID string) (httptransport.WebhookResponse, error) {
	item, err := h.Queries.GetWebhook(ctx, webhookID)
	if err != nil {
		return httptransport.WebhookResponse{}, err
	}
	return httptransport.WebhookResponse{Webhook: mapWebhook(item)}, nil
}

func (h Handler) ListWebhooksHandler(ctx context.Context) (httptransport.ListWebhooksResponse, error) {
	items, err := h.Queries.ListWebhooks(ctx)
	if err != nil {
		return httptransport.ListWebhooksResponse{}, err
	}
	result := make([]httptransport.WebhookDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapWebhook(item))
	}
	return httptransport.ListWebhooksResponse{Items: result}, nil
}

func (h Handler) ListDeliveriesHandler(ctx context.Context, webhookID string) (httptransport.ListDeliveriesResponse, error) {
	items, err := h.Queries.ListDeliveries(ctx, webhookID)
	if err != nil {
		return httptransport.ListDeliveriesResponse{}, err
	}
	result := make([]httptransport.DeliveryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapDelivery(item))
	}
	return httptransport.ListDeliveriesResponse{Items: result}, nil
}

// TestEchoHandler echoes back whatever payload it received. Pointing a
// webhook at this endpoint gives a zero-setup receiver for manual testing.
func (h Handler) TestEchoHandler(_ context.Context, payload any) httptransport.TestEchoResponse {
	now := time.Now().UTC()
	if h.Clock != nil {
		now = h.Clock.Now().UTC()
	}
	return httptransport.TestEchoResponse{
		Message:   "Webhook received successfully",
		Timestamp: now.Format(time.RFC3339),
		Payload:   payload,
	}
}

func mapWebhook(item entities.Webhook) httptransport.WebhookDTO {
	return httptransport.WebhookDTO{
		WebhookID:      item.WebhookID,
		ElectionID:     item.ElectionID,
		EventType:      string(item.EventType),
		URL:            item.URL,
		ExamplePayload: item.ExamplePayload,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapDelivery(item entities.DeliveryRecord) httptransport.DeliveryDTO {
	return httptransport.DeliveryDTO{
		DeliveryID:  item.DeliveryID,
		WebhookID:   item.WebhookID,
		ElectionID:  item.ElectionID,
		EventType:   string(item.EventType),
		URL:         item.URL,
		Outcome:     string(item.Outcome),
		StatusCode:  item.StatusCode,
		Detail:      item.Detail,
		AttemptedAt: item.AttemptedAt.Format(time.RFC3339),
		DurationMS:  item.Duration.Milliseconds(),
	}
}
