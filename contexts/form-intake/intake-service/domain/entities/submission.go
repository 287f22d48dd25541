package entities

import "time"

type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusApproved  SubmissionStatus = "approved"
)

// Submission is a customer's answer set against a form. SubmittedAt is set
// exactly once at creation; ApprovedAt exactly once at the submitted→approved
// transition. Neither is ever cleared or overwritten, and rows are never
// deleted (the delivery audit trail references them).
type Submission struct {
	SubmissionID string
	FormID       string
	CustomerID   string
	Answers      map[string]any
	Status       SubmissionStatus
	SubmittedAt  time.Time
	ApprovedAt   *time.Time
}
