package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electionportal/contexts/notifications/webhook-service/domain/entities"
	domainerrors "electionportal/contexts/notifications/webhook-service/domain/errors"
	"electionportal/contexts/notifications/webhook-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used by tests and local wiring. It backs the
// webhook registry, the delivery log, and the cross-context directory
// projections.
type Store struct {
	mu sync.RWMutex

	webhooks   map[string]entities.Webhook
	deliveries map[string][]entities.DeliveryRecord

	elections     map[string]ports.ElectionRef
	formElections map[string][]string
	formNames     map[string]string
	customerNames map[string]string
}

func NewStore() *Store {
	return &Store{
		webhooks:      make(map[string]entities.Webhook),
		deliveries:    make(map[string][]entities.DeliveryRecord),
		elections:     make(map[string]ports.ElectionRef),
		formElections: make(map[string][]string),
		formNames:     make(map[string]string),
		customerNames: make(map[string]string),
	}
}

// SetElection seeds the election projection.
func (s *Store) SetElection(electionID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[electionID] = ports.ElectionRef{ElectionID: electionID, Name: name}
}

// AttachForm seeds the form→election attachment projection.
func (s *Store) AttachForm(formID string, electionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formElections[formID] = append(s.formElections[formID], electionID)
}

// SetForm seeds the form name projection.
func (s *Store) SetForm(formID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formNames[formID] = name
}

// SetCustomer seeds the customer name projection.
func (s *Store) SetCustomer(customerID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customerNames[customerID] = name
}

func (s *Store) CreateWebhook(_ context.Context, webhook entities.Webhook) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhooks[webhook.WebhookID] = webhook
	return nil
}

func (s *Store) UpdateWebhook(_ context.Context, webhook entities.Webhook) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.webhooks[webhook.WebhookID]; !exists {
		return domainerrors.ErrWebhookNotFound
	}
	s.webhooks[webhook.WebhookID] = webhook
	return nil
}

func (s *Store) GetWebhook(_ context.Context, webhookID string) (entities.Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.webhooks[strings.TrimSpace(webhookID)]
	if !exists {
		return entities.Webhook{}, domainerrors.ErrWebhookNotFound
	}
	return item, nil
}

func (s *Store) ListWebhooks(_ context.Context) ([]entities.Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Webhook, 0, len(s.webhooks))
	for _, item := range s.webhooks {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteWebhook(_ context.Context, webhookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(webhookID)
	if _, exists := s.webhooks[id]; !exists {
		return domainerrors.ErrWebhookNotFound
	}
	delete(s.webhooks, id)
	return nil
}

func (s *Store) ListForEvent(_ context.Context, electionID string, eventType entities.WebhookEventType) ([]entities.Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.Webhook
	for _, item := range s.webhooks {
		if item.ElectionID == electionID && item.EventType == eventType {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) RecordDelivery(_ context.Context, record entities.DeliveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries[record.WebhookID] = append(s.deliveries[record.WebhookID], record)
	return nil
}

func (s *Store) ListDeliveries(_ context.Context, webhookID string) ([]entities.DeliveryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := append([]entities.DeliveryRecord(nil), s.deliveries[strings.TrimSpace(webhookID)]...)
	sort.Slice(records, func(i, j int) bool {
		return records[i].AttemptedAt.After(records[j].AttemptedAt)
	})
	return records, nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (ports.ElectionRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, exists := s.elections[strings.TrimSpace(electionID)]
	if !exists {
		return ports.ElectionRef{}, domainerrors.ErrElectionNotFound
	}
	return ref, nil
}

func (s *Store) ListFormElections(_ context.Context, formID string) ([]ports.ElectionRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var refs []ports.ElectionRef
	for _, electionID := range s.formElections[strings.TrimSpace(formID)] {
		if ref, ok := s.elections[electionID]; ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (s *Store) GetFormName(_ context.Context, formID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, exists := s.formNames[strings.TrimSpace(formID)]
	if !exists {
		return "", domainerrors.ErrFormNotFound
	}
	return name, nil
}

func (s *Store) GetCustomerName(_ context.Context, customerID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, exists := s.customerNames[strings.TrimSpace(customerID)]
	if !exists {
		return "", domainerrors.ErrCustomerNotFound
	}
	return name, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
