package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electionportal/contexts/election-catalog/election-service/domain/entities"
	domainerrors "electionportal/contexts/election-catalog/election-service/domain/errors"
	"electionportal/contexts/election-catalog/election-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used by tests and local wiring. Replace-set
// operations run under the write lock, so readers never see a half swap.
type Store struct {
	mu sync.RWMutex

	elections map[string]entities.Election
	customers map[string]entities.Customer

	assignedCustomers map[string][]string
	attachedForms     map[string][]string

	forms    map[string]ports.FormRef
	webhooks map[string][]ports.WebhookRef
}

func NewStore() *Store {
	return &Store{
		elections:         make(map[string]entities.Election),
		customers:         make(map[string]entities.Customer),
		assignedCustomers: make(map[string][]string),
		attachedForms:     make(map[string][]string),
		forms:             make(map[string]ports.FormRef),
		webhooks:          make(map[string][]ports.WebhookRef),
	}
}

// SetForm seeds the form projection.
func (s *Store) SetForm(formID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[formID] = ports.FormRef{FormID: formID, Name: name}
}

// SetWebhook seeds the webhook projection for an election.
func (s *Store) SetWebhook(electionID string, ref ports.WebhookRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhooks[electionID] = append(s.webhooks[electionID], ref)
}

func (s *Store) CreateElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[election.ElectionID] = election
	return nil
}

func (s *Store) UpdateElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.elections[election.ElectionID]; !exists {
		return domainerrors.ErrElectionNotFound
	}
	s.elections[election.ElectionID] = election
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.elections[strings.TrimSpace(electionID)]
	if !exists {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return item, nil
}

func (s *Store) GetElectionDetail(_ context.Context, electionID string) (ports.ElectionDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.elections[strings.TrimSpace(electionID)]
	if !exists {
		return ports.ElectionDetail{}, domainerrors.ErrElectionNotFound
	}

	detail := ports.ElectionDetail{Election: item}
	for _, customerID := range s.assignedCustomers[item.ElectionID] {
		if customer, ok := s.customers[customerID]; ok {
			detail.Customers = append(detail.Customers, customer)
		}
	}
	for _, formID := range s.attachedForms[item.ElectionID] {
		if ref, ok := s.forms[formID]; ok {
			detail.Forms = append(detail.Forms, ref)
		}
	}
	detail.Webhooks = append(detail.Webhooks, s.webhooks[item.ElectionID]...)
	return detail, nil
}

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0, len(s.elections))
	for _, item := range s.elections {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteElection(_ context.Context, electionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(electionID)
	if _, exists := s.elections[id]; !exists {
		return domainerrors.ErrElectionNotFound
	}
	delete(s.elections, id)
	delete(s.assignedCustomers, id)
	delete(s.attachedForms, id)
	return nil
}

func (s *Store) CreateCustomer(_ context.Context, customer entities.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) GetCustomer(_ context.Context, customerID string) (entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.customers[strings.TrimSpace(customerID)]
	if !exists {
		return entities.Customer{}, domainerrors.ErrCustomerNotFound
	}
	return item, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Customer, 0, len(s.customers))
	for _, item := range s.customers {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ReplaceCustomerAssignments(_ context.Context, electionID string, customerIDs []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(electionID)
	if _, exists := s.elections[id]; !exists {
		return nil, domainerrors.ErrElectionNotFound
	}

	var kept []string
	for _, customerID := range customerIDs {
		if _, ok := s.customers[customerID]; ok {
			kept = append(kept, customerID)
		}
	}
	s.assignedCustomers[id] = kept
	return kept, nil
}

func (s *Store) ReplaceFormAttachments(_ context.Context, electionID string, formIDs []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(electionID)
	if _, exists := s.elections[id]; !exists {
		return nil, domainerrors.ErrElectionNotFound
	}

	var kept []string
	for _, formID := range formIDs {
		if _, ok := s.forms[formID]; ok {
			kept = append(kept, formID)
		}
	}
	s.attachedForms[id] = kept
	return kept, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
