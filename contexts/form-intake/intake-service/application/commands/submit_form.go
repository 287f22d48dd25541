package commands

import (
	"context"
	"log/slog"
	"strings"

	application "electionportal/contexts/form-intake/intake-service/application"
	"electionportal/contexts/form-intake/intake-service/domain/entities"
	domainerrors "electionportal/contexts/form-intake/intake-service/domain/errors"
	"electionportal/contexts/form-intake/intake-service/domain/schema"
	"electionportal/contexts/form-intake/intake-service/ports"
)

type SubmitFormCommand struct {
	FormID     string
	CustomerID string
	Answers    map[string]any
}

type SubmitFormUseCase struct {
	Forms       ports.FormRepository
	Submissions ports.SubmissionRepository
	Customers   ports.CustomerDirectory
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// Execute validates the answer payload against the form's schema and persists
// a new submission. Validation failure returns the complete field error list
// and writes nothing. The lifecycle event is published only after the row is
// durably committed; a publish failure is logged and never rolls the write
// back.
func (uc SubmitFormUseCase) Execute(ctx context.Context, cmd SubmitFormCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)

	formID := strings.TrimSpace(cmd.FormID)
	customerID := strings.TrimSpace(cmd.CustomerID)
	if formID == "" || customerID == "" {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}

	form, err := uc.Forms.GetForm(ctx, formID)
	if err != nil {
		return entities.Submission{}, err
	}
	if _, err := uc.Customers.GetCustomer(ctx, customerID); err != nil {
		return entities.Submission{}, err
	}

	validated, err := schema.ValidateAnswers(form.Schema, cmd.Answers)
	if err != nil {
		return entities.Submission{}, err
	}

	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	now := uc.Clock.Now().UTC()
	submission := entities.Submission{
		SubmissionID: submissionID,
		FormID:       form.FormID,
		CustomerID:   customerID,
		Answers:      validated.Raw,
		Status:       entities.SubmissionStatusSubmitted,
		SubmittedAt:  now,
	}
	if err := uc.Submissions.CreateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission created",
		"event", "submission_created",
		"module", "form-intake/intake-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"form_id", submission.FormID,
		"customer_id", submission.CustomerID,
	)

	uc.publish(ctx, ports.SubmissionEvent{
		Kind:       ports.SubmissionEventSubmitted,
		Submission: submission,
		OccurredAt: now,
	}, logger)
	return submission, nil
}

func (uc SubmitFormUseCase) publish(ctx context.Context, event ports.SubmissionEvent, logger *slog.Logger) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishSubmissionEvent(ctx, event); err != nil {
		logger.Error("submission event publish failed",
			"event", "submission_event_publish_failed",
			"module", "form-intake/intake-service",
			"layer", "application",
			"submission_id", event.Submission.SubmissionID,
			"kind", string(event.Kind),
			"error", err.Error(),
		)
	}
}
