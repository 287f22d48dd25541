package commands

import (
	"context"
	"log/slog"
	"strings"

	application "electionportal/contexts/form-intake/intake-service/application"
	"electionportal/contexts/form-intake/intake-service/domain/entities"
	"electionportal/contexts/form-intake/intake-service/ports"
)

type ApproveSubmissionCommand struct {
	SubmissionID string
}

type ApproveSubmissionUseCase struct {
	Submissions ports.SubmissionRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute moves a submission from submitted to approved through the
// repository's compare-and-swap. Under concurrent calls on one id exactly one
// caller wins; the rest see ErrInvalidStatusTransition. Approving an already
// approved submission is a conflict, not a no-op.
func (uc ApproveSubmissionUseCase) Execute(ctx context.Context, cmd ApproveSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)

	now := uc.Clock.Now().UTC()
	submission, err := uc.Submissions.TransitionStatus(
		ctx,
		strings.TrimSpace(cmd.SubmissionID),
		entities.SubmissionStatusSubmitted,
		entities.SubmissionStatusApproved,
		now,
	)
	if err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission approved",
		"event", "submission_approved",
		"module", "form-intake/intake-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
	)

	if uc.Publisher != nil {
		event := ports.SubmissionEvent{
			Kind:       ports.SubmissionEventApproved,
			Submission: submission,
			OccurredAt: now,
		}
		if err := uc.Publisher.PublishSubmissionEvent(ctx, event); err != nil {
			logger.Error("submission event publish failed",
				"event", "submission_event_publish_failed",
				"module", "form-intake/intake-service",
				"layer", "application",
				"submission_id", submission.SubmissionID,
				"kind", string(event.Kind),
				"error", err.Error(),
			)
		}
	}
	return submission, nil
}
