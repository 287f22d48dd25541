package ports

import (
	"context"
	"time"

	"electionportal/contexts/form-intake/intake-service/domain/entities"
)

type SubmissionFilter struct {
	FormID     string
	CustomerID string
	Status     entities.SubmissionStatus
}

type FormRepository interface {
	CreateForm(ctx context.Context, form entities.Form) error
	UpdateForm(ctx context.Context, form entities.Form) error
	GetForm(ctx context.Context, formID string) (entities.Form, error)
	ListForms(ctx context.Context) ([]entities.Form, error)
	DeleteForm(ctx context.Context, formID string) error
}

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]entities.Submission, error)

	// TransitionStatus performs the atomic compare-and-swap from one status to
	// another. Exactly one of any set of concurrent callers observes success;
	// the rest get ErrInvalidStatusTransition. ErrSubmissionNotFound when the
	// id does not exist.
	TransitionStatus(
		ctx context.Context,
		submissionID string,
		from entities.SubmissionStatus,
		to entities.SubmissionStatus,
		at time.Time,
	) (entities.Submission, error)
}

type CustomerRef struct {
	CustomerID string
	Name       string
}

// CustomerDirectory is a read-only projection of the customer registry owned
// by the election-catalog context.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, customerID string) (CustomerRef, error)
}

type SubmissionEventKind string

const (
	SubmissionEventSubmitted SubmissionEventKind = "submitted"
	SubmissionEventApproved  SubmissionEventKind = "approved"
)

// SubmissionEvent is published after a lifecycle transition has been durably
// committed. Downstream delivery failures never propagate back.
type SubmissionEvent struct {
	Kind       SubmissionEventKind
	Submission entities.Submission
	OccurredAt time.Time
}

type EventPublisher interface {
	PublishSubmissionEvent(ctx context.Context, event SubmissionEvent) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
