package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"electionportal/contexts/form-intake/intake-service/domain/entities"
	domainerrors "electionportal/contexts/form-intake/intake-service/domain/errors"
	"electionportal/contexts/form-intake/intake-service/ports"
)

func newApproveFixture(publisher ports.EventPublisher) (ApproveSubmissionUseCase, *testSubmissions) {
	submissions := &testSubmissions{stored: map[string]entities.Submission{
		"submission-1": {
			SubmissionID: "submission-1",
			FormID:       "form-1",
			CustomerID:   "customer-1",
			Status:       entities.SubmissionStatusSubmitted,
			SubmittedAt:  time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
		},
	}}
	uc := ApproveSubmissionUseCase{
		Submissions: submissions,
		Publisher:   publisher,
		Clock:       fixedClock{now: time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)},
	}
	return uc, submissions
}

func TestApproveSubmissionSetsApprovedAtAndPublishes(t *testing.T) {
	publisher := &testPublisher{}
	uc, _ := newApproveFixture(publisher)

	submission, err := uc.Execute(context.Background(), ApproveSubmissionCommand{SubmissionID: "submission-1"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if submission.Status != entities.SubmissionStatusApproved {
		t.Fatalf("expected approved, got %s", submission.Status)
	}
	if submission.ApprovedAt == nil || !submission.ApprovedAt.Equal(time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected approved_at from clock, got %v", submission.ApprovedAt)
	}
	if len(publisher.events) != 1 || publisher.events[0].Kind != ports.SubmissionEventApproved {
		t.Fatalf("expected one approved event, got %+v", publisher.events)
	}
}

func TestApproveSubmissionSecondCallConflicts(t *testing.T) {
	uc, _ := newApproveFixture(&testPublisher{})

	if _, err := uc.Execute(context.Background(), ApproveSubmissionCommand{SubmissionID: "submission-1"}); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	_, err := uc.Execute(context.Background(), ApproveSubmissionCommand{SubmissionID: "submission-1"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition on second approve, got %v", err)
	}
}

func TestApproveSubmissionUnknownID(t *testing.T) {
	uc, _ := newApproveFixture(&testPublisher{})

	_, err := uc.Execute(context.Background(), ApproveSubmissionCommand{SubmissionID: "missing"})
	if !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected submission not found, got %v", err)
	}
}

func TestApproveSubmissionSucceedsWhenPublishFails(t *testing.T) {
	publisher := &testPublisher{err: errors.New("dispatcher unavailable")}
	uc, submissions := newApproveFixture(publisher)

	submission, err := uc.Execute(context.Background(), ApproveSubmissionCommand{SubmissionID: "submission-1"})
	if err != nil {
		t.Fatalf("publish failure must not fail the approve: %v", err)
	}
	stored := submissions.stored[submission.SubmissionID]
	if stored.Status != entities.SubmissionStatusApproved {
		t.Fatal("approval must stay persisted when publish fails")
	}
}
