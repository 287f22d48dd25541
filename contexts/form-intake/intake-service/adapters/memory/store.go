package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electionportal/contexts/form-intake/intake-service/domain/entities"
	domainerrors "electionportal/contexts/form-intake/intake-service/domain/errors"
	"electionportal/contexts/form-intake/intake-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used by tests and local wiring. The single
// mutex doubles as the transition guard: TransitionStatus is atomic per store.
type Store struct {
	mu sync.RWMutex

	forms       map[string]entities.Form
	submissions map[string]entities.Submission
	customers   map[string]ports.CustomerRef
}

func NewStore(seed []entities.Form) *Store {
	forms := make(map[string]entities.Form, len(seed))
	for _, item := range seed {
		forms[item.FormID] = item
	}
	return &Store{
		forms:       forms,
		submissions: make(map[string]entities.Submission),
		customers:   make(map[string]ports.CustomerRef),
	}
}

// SetCustomer seeds the customer projection.
func (s *Store) SetCustomer(customerID string, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customerID] = ports.CustomerRef{CustomerID: customerID, Name: name}
}

func (s *Store) CreateForm(_ context.Context, form entities.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[form.FormID] = form
	return nil
}

func (s *Store) UpdateForm(_ context.Context, form entities.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.FormID]; !exists {
		return domainerrors.ErrFormNotFound
	}
	s.forms[form.FormID] = form
	return nil
}

func (s *Store) GetForm(_ context.Context, formID string) (entities.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.forms[strings.TrimSpace(formID)]
	if !exists {
		return entities.Form{}, domainerrors.ErrFormNotFound
	}
	return item, nil
}

func (s *Store) ListForms(_ context.Context) ([]entities.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Form, 0, len(s.forms))
	for _, item := range s.forms {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteForm(_ context.Context, formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[strings.TrimSpace(formID)]; !exists {
		return domainerrors.ErrFormNotFound
	}
	delete(s.forms, strings.TrimSpace(formID))
	return nil
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) ListSubmissions(_ context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Submission, 0, len(s.submissions))
	for _, item := range s.submissions {
		if strings.TrimSpace(filter.FormID) != "" && item.FormID != strings.TrimSpace(filter.FormID) {
			continue
		}
		if strings.TrimSpace(filter.CustomerID) != "" && item.CustomerID != strings.TrimSpace(filter.CustomerID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})
	return items, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	submissionID string,
	from entities.SubmissionStatus,
	to entities.SubmissionStatus,
	at time.Time,
) (entities.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	if item.Status != from {
		return entities.Submission{}, domainerrors.ErrInvalidStatusTransition
	}
	approvedAt := at.UTC()
	item.Status = to
	item.ApprovedAt = &approvedAt
	s.submissions[item.SubmissionID] = item
	return item, nil
}

func (s *Store) GetCustomer(_ context.Context, customerID string) (ports.CustomerRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, exists := s.customers[strings.TrimSpace(customerID)]
	if !exists {
		return ports.CustomerRef{}, domainerrors.ErrCustomerNotFound
	}
	return item, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
