package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries the full field error list for a rejected
// answer payload.
type ValidationErrorResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Fields  []FieldErrorDTO `json:"fields"`
}

type FieldErrorDTO struct {
	QuestionID string `json:"question_id"`
	Code       string `json:"code"`
	Value      any    `json:"value,omitempty"`
}

type QuestionDTO struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

type SaveFormRequest struct {
	Name      string        `json:"name"`
	Questions []QuestionDTO `json:"questions"`
}

type FormDTO struct {
	FormID    string        `json:"form_id"`
	Name      string        `json:"name"`
	Questions []QuestionDTO `json:"questions"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type FormResponse struct {
	Form FormDTO `json:"form"`
}

type ListFormsResponse struct {
	Items []FormDTO `json:"items"`
}

type SubmitFormRequest struct {
	FormID     string         `json:"form_id"`
	CustomerID string         `json:"customer_id"`
	Answers    map[string]any `json:"answers"`
}

type SubmissionDTO struct {
	SubmissionID string         `json:"submission_id"`
	FormID       string         `json:"form_id"`
	CustomerID   string         `json:"customer_id"`
	Answers      map[string]any `json:"answers"`
	Status       string         `json:"status"`
	SubmittedAt  string         `json:"submitted_at"`
	ApprovedAt   string         `json:"approved_at,omitempty"`
}

type SubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionDTO `json:"items"`
}
