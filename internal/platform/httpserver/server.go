package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	electionservice "electionportal/contexts/election-catalog/election-service"
	electionerrors "electionportal/contexts/election-catalog/election-service/domain/errors"
	electionhttp "electionportal/contexts/election-catalog/election-service/transport/http"
	intakeservice "electionportal/contexts/form-intake/intake-service"
	intakeerrors "electionportal/contexts/form-intake/intake-service/domain/errors"
	"electionportal/contexts/form-intake/intake-service/domain/schema"
	intakehttp "electionportal/contexts/form-intake/intake-service/transport/http"
	webhookservice "electionportal/contexts/notifications/webhook-service"
	webhookerrors "electionportal/contexts/notifications/webhook-service/domain/errors"
	webhookhttp "electionportal/contexts/notifications/webhook-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "electionportal/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	election electionservice.Module
	intake   intakeservice.Module
	webhooks webhookservice.Module
}

func New(
	election electionservice.Module,
	intake intakeservice.Module,
	webhooks webhookservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		election: election,
		intake:   intake,
		webhooks: webhooks,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/elections", s.handleCreateElection)
	s.mux.HandleFunc("GET /api/elections", s.handleListElections)
	s.mux.HandleFunc("GET /api/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("PUT /api/elections/{election_id}", s.handleUpdateElection)
	s.mux.HandleFunc("DELETE /api/elections/{election_id}", s.handleDeleteElection)
	s.mux.HandleFunc("POST /api/elections/{election_id}/assign-customers", s.handleAssignCustomers)
	s.mux.HandleFunc("POST /api/elections/{election_id}/attach-forms", s.handleAttachForms)

	s.mux.HandleFunc("POST /api/customers", s.handleCreateCustomer)
	s.mux.HandleFunc("GET /api/customers", s.handleListCustomers)
	s.mux.HandleFunc("GET /api/customers/{customer_id}", s.handleGetCustomer)

	s.mux.HandleFunc("POST /api/forms", s.handleCreateForm)
	s.mux.HandleFunc("GET /api/forms", s.handleListForms)
	s.mux.HandleFunc("GET /api/forms/{form_id}", s.handleGetForm)
	s.mux.HandleFunc("PUT /api/forms/{form_id}", s.handleUpdateForm)
	s.mux.HandleFunc("DELETE /api/forms/{form_id}", s.handleDeleteForm)

	s.mux.HandleFunc("POST /api/submissions", s.handleSubmitForm)
	s.mux.HandleFunc("GET /api/submissions", s.handleListSubmissions)
	s.mux.HandleFunc("GET /api/submissions/{submission_id}", s.handleGetSubmission)
	s.mux.HandleFunc("PUT /api/submissions/{submission_id}/approve", s.handleApproveSubmission)

	s.mux.HandleFunc("POST /api/webhooks", s.handleCreateWebhook)
	s.mux.HandleFunc("GET /api/webhooks", s.handleListWebhooks)
	s.mux.HandleFunc("POST /api/webhooks/test", s.handleWebhookTestEcho)
	s.mux.HandleFunc("GET /api/webhooks/{webhook_id}", s.handleGetWebhook)
	s.mux.HandleFunc("PUT /api/webhooks/{webhook_id}", s.handleUpdateWebhook)
	s.mux.HandleFunc("DELETE /api/webhooks/{webhook_id}", s.handleDeleteWebhook)
	s.mux.HandleFunc("GET /api/webhooks/{webhook_id}/deliveries", s.handleListDeliveries)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.SaveElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.CreateElectionHandler(r.Context(), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.election.Handler.ListElectionsHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	resp, err := s.election.Handler.GetElectionHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.SaveElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.UpdateElectionHandler(r.Context(), r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	if err := s.election.Handler.DeleteElectionHandler(r.Context(), r.PathValue("election_id")); err != nil {
		writeElectionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignCustomers(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.AssignCustomersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.AssignCustomersHandler(r.Context(), r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAttachForms(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.AttachFormsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.AttachFormsHandler(r.Context(), r.PathValue("election_id"), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req electionhttp.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.election.Handler.CreateCustomerHandler(r.Context(), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.election.Handler.ListCustomersHandler(r.Context())
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	resp, err := s.election.Handler.GetCustomerHandler(r.Context(), r.PathValue("customer_id"))
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	var req intakehttp.SaveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIntakeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.intake.Handler.CreateFormHandler(r.Context(), req)
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	resp, err := s.intake.Handler.ListFormsHandler(r.Context())
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	resp, err := s.intake.Handler.GetFormHandler(r.Context(), r.PathValue("form_id"))
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	var req intakehttp.SaveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIntakeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.intake.Handler.UpdateFormHandler(r.Context(), r.PathValue("form_id"), req)
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := s.intake.Handler.DeleteFormHandler(r.Context(), r.PathValue("form_id")); err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	var req intakehttp.SubmitFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIntakeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.intake.Handler.SubmitFormHandler(r.Context(), req)
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.intake.Handler.ListSubmissionsHandler(
		r.Context(),
		query.Get("form_id"),
		query.Get("customer_id"),
		query.Get("status"),
	)
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.intake.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.intake.Handler.ApproveSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeIntakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookhttp.SaveWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.webhooks.Handler.CreateWebhookHandler(r.Context(), req)
	if err != nil {
		writeWebhookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListWebhooks(w http.ResponseWriter, r *http.Request) {
	resp, err := s.webhooks.Handler.ListWebhooksHandler(r.Context())
	if err != nil {
		writeWebhookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetWebhook(w http.ResponseWriter, r *http.Request) {
	resp, err := s.webhooks.Handler.GetWebhookHandler(r.Context(), r.PathValue("webhook_id"))
	if err != nil {
		writeWebhookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookhttp.SaveWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.webhooks.Handler.UpdateWebhookHandler(r.Context(), r.PathValue("webhook_id"), req)
	if err != nil {
		writeWebhookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	if err := s.webhooks.Handler.DeleteWebhookHandler(r.Context(), r.PathValue("webhook_id")); err != nil {
		writeWebhookDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDeliveries(w http.ResponseWriter, r *http.Request) {
	resp, err := s.webhooks.Handler.ListDeliveriesHandler(r.Context(), r.PathValue("webhook_id"))
	if err != nil {
		writeWebhookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWebhookTestEcho(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	s.logger.Info("webhook test payload received",
		"event", "webhook_test_received",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	writeJSON(w, http.StatusOK, s.webhooks.Handler.TestEchoHandler(r.Context(), payload))
}

func writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrElectionNotFound):
		writeElectionError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrCustomerNotFound):
		writeElectionError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidElectionInput),
		errors.Is(err, electionerrors.ErrInvalidCustomerInput):
		writeElectionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeElectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIntakeDomainError(w http.ResponseWriter, err error) {
	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) {
		fields := make([]intakehttp.FieldErrorDTO, 0, len(validationErr.Fields))
		for _, field := range validationErr.Fields {
			fields = append(fields, intakehttp.FieldErrorDTO{
				QuestionID: field.QuestionID,
				Code:       string(field.Code),
				Value:      field.Value,
			})
		}
		writeJSON(w, http.StatusUnprocessableEntity, intakehttp.ValidationErrorResponse{
			Code:    "validation_failed",
			Message: validationErr.Error(),
			Fields:  fields,
		})
		return
	}

	switch {
	case errors.Is(err, intakeerrors.ErrFormNotFound):
		writeIntakeError(w, http.StatusNotFound, "form_not_found", err.Error())
	case errors.Is(err, intakeerrors.ErrSubmissionNotFound):
		writeIntakeError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, intakeerrors.ErrCustomerNotFound):
		writeIntakeError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, intakeerrors.ErrInvalidStatusTransition):
		writeIntakeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, intakeerrors.ErrInvalidFormDefinition),
		errors.Is(err, intakeerrors.ErrInvalidSubmissionInput):
		writeIntakeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeIntakeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWebhookDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, webhookerrors.ErrWebhookNotFound):
		writeWebhookError(w, http.StatusNotFound, "webhook_not_found", err.Error())
	case errors.Is(err, webhookerrors.ErrElectionNotFound):
		writeWebhookError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, webhookerrors.ErrInvalidWebhookInput):
		writeWebhookError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeWebhookError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeElectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, electionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeIntakeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, intakehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeWebhookError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, webhookhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
