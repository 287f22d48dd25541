package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"electionportal/contexts/form-intake/intake-service/domain/entities"
	domainerrors "electionportal/contexts/form-intake/intake-service/domain/errors"
	"electionportal/contexts/form-intake/intake-service/ports"
)

func seedSubmission(t *testing.T, store *Store) entities.Submission {
	t.Helper()
	submission := entities.Submission{
		SubmissionID: "submission-1",
		FormID:       "form-1",
		CustomerID:   "customer-1",
		Status:       entities.SubmissionStatusSubmitted,
		SubmittedAt:  time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := store.CreateSubmission(context.Background(), submission); err != nil {
		t.Fatalf("seed submission failed: %v", err)
	}
	return submission
}

func TestTransitionStatusExactlyOneWinner(t *testing.T) {
	store := NewStore(nil)
	seedSubmission(t, store)

	const callers = 32
	var wg sync.WaitGroup
	results := make([]error, callers)
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			<-start
			_, err := store.TransitionStatus(
				context.Background(),
				"submission-1",
				entities.SubmissionStatusSubmitted,
				entities.SubmissionStatusApproved,
				time.Date(2026, time.April, 2, 8, 0, 0, 0, time.UTC),
			)
			results[slot] = err
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, domainerrors.ErrInvalidStatusTransition):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}

	final, err := store.GetSubmission(context.Background(), "submission-1")
	if err != nil {
		t.Fatalf("get after race failed: %v", err)
	}
	if final.Status != entities.SubmissionStatusApproved {
		t.Fatalf("expected approved, got %s", final.Status)
	}
	if final.ApprovedAt == nil {
		t.Fatal("approved_at must be set by the winning transition")
	}
}

func TestTransitionStatusNotFound(t *testing.T) {
	store := NewStore(nil)

	_, err := store.TransitionStatus(
		context.Background(),
		"missing",
		entities.SubmissionStatusSubmitted,
		entities.SubmissionStatusApproved,
		time.Now(),
	)
	if !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListSubmissionsFilters(t *testing.T) {
	store := NewStore(nil)
	base := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)
	seed := []entities.Submission{
		{SubmissionID: "s1", FormID: "form-1", CustomerID: "c1", Status: entities.SubmissionStatusSubmitted, SubmittedAt: base},
		{SubmissionID: "s2", FormID: "form-1", CustomerID: "c2", Status: entities.SubmissionStatusApproved, SubmittedAt: base.Add(time.Minute)},
		{SubmissionID: "s3", FormID: "form-2", CustomerID: "c1", Status: entities.SubmissionStatusSubmitted, SubmittedAt: base.Add(2 * time.Minute)},
	}
	for _, submission := range seed {
		if err := store.CreateSubmission(context.Background(), submission); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	byForm, err := store.ListSubmissions(context.Background(), ports.SubmissionFilter{FormID: "form-1"})
	if err != nil {
		t.Fatalf("list by form failed: %v", err)
	}
	if len(byForm) != 2 {
		t.Fatalf("expected 2 submissions for form-1, got %d", len(byForm))
	}
	if byForm[0].SubmissionID != "s2" {
		t.Fatalf("expected newest first, got %s", byForm[0].SubmissionID)
	}

	byStatus, err := store.ListSubmissions(context.Background(), ports.SubmissionFilter{
		CustomerID: "c1",
		Status:     entities.SubmissionStatusSubmitted,
	})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if len(byStatus) != 2 {
		t.Fatalf("expected 2 submitted submissions for c1, got %d", len(byStatus))
	}
}
