package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"electionportal/contexts/form-intake/intake-service/application/commands"
	"electionportal/contexts/form-intake/intake-service/application/queries"
	"electionportal/contexts/form-intake/intake-service/domain/entities"
	"electionportal/contexts/form-intake/intake-service/domain/schema"
	httptransport "electionportal/contexts/form-intake/intake-service/transport/http"
)

type Handler struct {
	ManageForm        commands.ManageFormUseCase
	SubmitForm        commands.SubmitFormUseCase
	ApproveSubmission commands.ApproveSubmissionUseCase
	Queries           queries.QueryUseCase
	Logger            *slog.Logger
}

func (h Handler) CreateFormHandler(ctx context.Context, req httptransport.SaveFormRequest) (httptransport.FormResponse, error) {
	item, err := h.ManageForm.Create(ctx, commands.SaveFormCommand{
		Name:      req.Name,
		Questions: mapQuestionsIn(req.Questions),
	})
	if err != nil {
		return httptransport.FormResponse{}, err
	}
	return httptransport.FormResponse{Form: mapForm(item)}, nil
}

func (h Handler) UpdateFormHandler(ctx context.Context, formID string, req httptransport.SaveFormRequest) (httptransport.FormResponse, error) {
	item, err := h.ManageForm.Update(ctx, formID, commands.SaveFormCommand{
		Name:      req.Name,
		Questions: mapQuestionsIn(req.Questions),
	})
	if err != nil {
		return httptransport.FormResponse{}, err
	}
	return httptransport.FormResponse{Form: mapForm(item)}, nil
}

func (h Handler) DeleteFormHandler(ctx context.Context, formID string) error {
	return h.ManageForm.Delete(ctx, formID)
}

func (h Handler) GetFormHandler(ctx context.Context, formID string) (httptransport.FormResponse, error) {
	item, err := h.Queries.GetForm(ctx, formID)
	if err != nil {
		return httptransport.FormResponse{}, err
	}
	return httptransport.FormResponse{Form: mapForm(item)}, nil
}

func (h Handler) ListFormsHandler(ctx context.Context) (httptransport.ListFormsResponse, error) {
	items, err := h.Queries.ListForms(ctx)
	if err != nil {
		return httptransport.ListFormsResponse{}, err
	}
	result := make([]httptransport.FormDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapForm(item))
	}
	return httptransport.ListFormsResponse{Items: result}, nil
}

func (h Handler) SubmitFormHandler(ctx context.Context, req httptransport.SubmitFormRequest) (httptransport.SubmissionResponse, error) {
	item, err := h.SubmitForm.Execute(ctx, commands.SubmitFormCommand{
		FormID:     req.FormID,
		CustomerID: req.CustomerID,
		Answers:    req.Answers,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) ApproveSubmissionHandler(ctx context.Context, submissionID string) (httptransport.SubmissionResponse, error) {
	item, err := h.ApproveSubmission.Execute(ctx, commands.ApproveSubmissionCommand{
		SubmissionID: submissionID,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.SubmissionResponse, error) {
	item, err := h.Queries.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) ListSubmissionsHandler(
	ctx context.Context,
	formID string,
	customerID string,
	status string,
) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Queries.ListSubmissions(ctx, queries.ListSubmissionsQuery{
		FormID:     formID,
		CustomerID: customerID,
		Status:     status,
	})
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	result := make([]httptransport.SubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: result}, nil
}

func mapQuestionsIn(items []httptransport.QuestionDTO) []schema.Question {
	questions := make([]schema.Question, 0, len(items))
	for _, item := range items {
		questions = append(questions, schema.Question{
			ID:      item.ID,
			Label:   item.Label,
			Type:    schema.QuestionType(item.Type),
			Options: item.Options,
		})
	}
	return questions
}

func mapForm(item entities.Form) httptransport.FormDTO {
	questions := make([]httptransport.QuestionDTO, 0, len(item.Schema))
	for _, question := range item.Schema {
		questions = append(questions, httptransport.QuestionDTO{
			ID:      question.ID,
			Label:   question.Label,
			Type:    string(question.Type),
			Options: question.Options,
		})
	}
	return httptransport.FormDTO{
		FormID:    item.FormID,
		Name:      item.Name,
		Questions: questions,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapSubmission(item entities.Submission) httptransport.SubmissionDTO {
	dto := httptransport.SubmissionDTO{
		SubmissionID: item.SubmissionID,
		FormID:       item.FormID,
		CustomerID:   item.CustomerID,
		Answers:      item.Answers,
		Status:       string(item.Status),
		SubmittedAt:  item.SubmittedAt.Format(time.RFC3339),
	}
	if item.ApprovedAt != nil {
		dto.ApprovedAt = item.ApprovedAt.Format(time.RFC3339)
	}
	return dto
}
