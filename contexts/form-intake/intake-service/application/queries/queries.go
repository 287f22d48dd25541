package queries

import (
	"context"
	"strings"

	"electionportal/contexts/form-intake/intake-service/domain/entities"
	"electionportal/contexts/form-intake/intake-service/ports"
)

type ListSubmissionsQuery struct {
	FormID     string
	CustomerID string
	Status     string
}

type QueryUseCase struct {
	Forms       ports.FormRepository
	Submissions ports.SubmissionRepository
}

func (uc QueryUseCase) GetForm(ctx context.Context, formID string) (entities.Form, error) {
	return uc.Forms.GetForm(ctx, strings.TrimSpace(formID))
}

func (uc QueryUseCase) ListForms(ctx context.Context) ([]entities.Form, error) {
	return uc.Forms.ListForms(ctx)
}

func (uc QueryUseCase) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	return uc.Submissions.GetSubmission(ctx, strings.TrimSpace(submissionID))
}

func (uc QueryUseCase) ListSubmissions(ctx context.Context, query ListSubmissionsQuery) ([]entities.Submission, error) {
	filter := ports.SubmissionFilter{
		FormID:     strings.TrimSpace(query.FormID),
		CustomerID: strings.TrimSpace(query.CustomerID),
	}
	if strings.TrimSpace(query.Status) != "" {
		filter.Status = entities.SubmissionStatus(strings.TrimSpace(query.Status))
	}
	return uc.Submissions.ListSubmissions(ctx, filter)
}
