package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electionportal/contexts/notifications/webhook-service/domain/entities"
	domainerrors "electionportal/contexts/notifications/webhook-service/domain/errors"
	"electionportal/contexts/notifications/webhook-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateWebhook(ctx context.Context, webhook entities.Webhook) error {
	row := webhookModelFromEntity(webhook)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) UpdateWebhook(ctx context.Context, webhook entities.Webhook) error {
	row := webhookModelFromEntity(webhook)
	result := r.db.WithContext(ctx).
		Model(&webhookModel{}).
		Where("webhook_id = ?", row.WebhookID).
		Updates(map[string]any{
			"election_id":     row.ElectionID,
			"event_type":      row.EventType,
			"url":             row.URL,
			"example_payload": row.ExamplePayload,
			"updated_at":      row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWebhookNotFound
	}
	return nil
}

func (r *Repository) GetWebhook(ctx context.Context, webhookID string) (entities.Webhook, error) {
	var row webhookModel
	err := r.db.WithContext(ctx).
		Where("webhook_id = ?", strings.TrimSpace(webhookID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Webhook{}, domainerrors.ErrWebhookNotFound
		}
		return entities.Webhook{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListWebhooks(ctx context.Context) ([]entities.Webhook, error) {
	var rows []webhookModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Webhook, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteWebhook(ctx context.Context, webhookID string) error {
	result := r.db.WithContext(ctx).
		Where("webhook_id = ?", strings.TrimSpace(webhookID)).
		Delete(&webhookModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWebhookNotFound
	}
	return nil
}

func (r *Repository) ListForEvent(ctx context.Context, electionID string, eventType entities.WebhookEventType) ([]entities.Webhook, error) {
	var rows []webhookModel
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND event_type = ?", strings.TrimSpace(electionID), string(eventType)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Webhook, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) RecordDelivery(ctx context.Context, record entities.DeliveryRecord) error {
	row := deliveryModel{
		DeliveryID:  record.DeliveryID,
		WebhookID:   record.WebhookID,
		ElectionID:  record.ElectionID,
		EventType:   string(record.EventType),
		URL:         record.URL,
		Outcome:     string(record.Outcome),
		StatusCode:  record.StatusCode,
		Detail:      record.Detail,
		AttemptedAt: record.AttemptedAt.UTC(),
		DurationMS:  record.Duration.Milliseconds(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListDeliveries(ctx context.Context, webhookID string) ([]entities.DeliveryRecord, error) {
	var rows []deliveryModel
	err := r.db.WithContext(ctx).
		Where("webhook_id = ?", strings.TrimSpace(webhookID)).
		Order("attempted_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.DeliveryRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (ports.ElectionRef, error) {
	var row electionProjectionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionRef{}, domainerrors.ErrElectionNotFound
		}
		return ports.ElectionRef{}, err
	}
	return ports.ElectionRef{ElectionID: row.ElectionID, Name: row.Name}, nil
}

func (r *Repository) ListFormElections(ctx context.Context, formID string) ([]ports.ElectionRef, error) {
	var rows []electionProjectionModel
	err := r.db.WithContext(ctx).
		Joins("JOIN election_forms ON election_forms.election_id = elections.election_id").
		Where("election_forms.form_id = ?", strings.TrimSpace(formID)).
		Order("elections.created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	refs := make([]ports.ElectionRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, ports.ElectionRef{ElectionID: row.ElectionID, Name: row.Name})
	}
	return refs, nil
}

func (r *Repository) GetFormName(ctx context.Context, formID string) (string, error) {
	var row formProjectionModel
	err := r.db.WithContext(ctx).
		Where("form_id = ?", strings.TrimSpace(formID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrFormNotFound
		}
		return "", err
	}
	return row.Name, nil
}

func (r *Repository) GetCustomerName(ctx context.Context, customerID string) (string, error) {
	var row customerProjectionModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", strings.TrimSpace(customerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrCustomerNotFound
		}
		return "", err
	}
	return row.Name, nil
}

type webhookModel struct {
	WebhookID      string    `gorm:"column:webhook_id;primaryKey"`
	ElectionID     string    `gorm:"column:election_id"`
	EventType      string    `gorm:"column:event_type"`
	URL            string    `gorm:"column:url"`
	ExamplePayload string    `gorm:"column:example_payload"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (webhookModel) TableName() string {
	return "webhooks"
}

func webhookModelFromEntity(item entities.Webhook) webhookModel {
	return webhookModel{
		WebhookID:      strings.TrimSpace(item.WebhookID),
		ElectionID:     strings.TrimSpace(item.ElectionID),
		EventType:      string(item.EventType),
		URL:            strings.TrimSpace(item.URL),
		ExamplePayload: item.ExamplePayload,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func (m webhookModel) toEntity() entities.Webhook {
	return entities.Webhook{
		WebhookID:      m.WebhookID,
		ElectionID:     m.ElectionID,
		EventType:      entities.WebhookEventType(m.EventType),
		URL:            m.URL,
		ExamplePayload: m.ExamplePayload,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type deliveryModel struct {
	DeliveryID  string    `gorm:"column:delivery_id;primaryKey"`
	WebhookID   string    `gorm:"column:webhook_id"`
	ElectionID  string    `gorm:"column:election_id"`
	EventType   string    `gorm:"column:event_type"`
	URL         string    `gorm:"column:url"`
	Outcome     string    `gorm:"column:outcome"`
	StatusCode  int       `gorm:"column:status_code"`
	Detail      string    `gorm:"column:detail"`
	AttemptedAt time.Time `gorm:"column:attempted_at"`
	DurationMS  int64     `gorm:"column:duration_ms"`
}

func (deliveryModel) TableName() string {
	return "webhook_deliveries"
}

func (m deliveryModel) toEntity() entities.DeliveryRecord {
	return entities.DeliveryRecord{
		DeliveryID:  m.DeliveryID,
		WebhookID:   m.WebhookID,
		ElectionID:  m.ElectionID,
		EventType:   entities.WebhookEventType(m.EventType),
		URL:         m.URL,
		Outcome:     entities.DeliveryOutcome(m.Outcome),
		StatusCode:  m.StatusCode,
		Detail:      m.Detail,
		AttemptedAt: m.AttemptedAt.UTC(),
		Duration:    time.Duration(m.DurationMS) * time.Millisecond,
	}
}

type electionProjectionModel struct {
	ElectionID string    `gorm:"column:election_id;primaryKey"`
	Name       string    `gorm:"column:name"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (electionProjectionModel) TableName() string {
	return "elections"
}

type formProjectionModel struct {
	FormID string `gorm:"column:form_id;primaryKey"`
	Name   string `gorm:"column:name"`
}

func (formProjectionModel) TableName() string {
	return "forms"
}

type customerProjectionModel struct {
	CustomerID string `gorm:"column:customer_id;primaryKey"`
	Name       string `gorm:"column:name"`
}

func (customerProjectionModel) TableName() string {
	return "customers"
}
