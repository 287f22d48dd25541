package http

// ErrorResponse is the generic error body for the election endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SaveElectionRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	State string `json:"state"`
}

type ElectionDTO struct {
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	State      string `json:"state"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type CustomerDTO struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
}

type FormRefDTO struct {
	FormID string `json:"form_id"`
	Name   string `json:"name"`
}

type WebhookRefDTO struct {
	WebhookID string `json:"webhook_id"`
	EventType string `json:"event_type"`
	URL       string `json:"url"`
}

type ElectionResponse struct {
	Election ElectionDTO `json:"election"`
}

// ElectionDetailResponse is the aggregate read view of an election.
type ElectionDetailResponse struct {
	Election  ElectionDTO     `json:"election"`
	Customers []CustomerDTO   `json:"customers"`
	Forms     []FormRefDTO    `json:"forms"`
	Webhooks  []WebhookRefDTO `json:"webhooks"`
}

type ListElectionsResponse struct {
	Items []ElectionDTO `json:"items"`
}

type AssignCustomersRequest struct {
	CustomerIDs []string `json:"customer_ids"`
}

type AttachFormsRequest struct {
	FormIDs []string `json:"form_ids"`
}

// ReplaceSetResponse reports which ids survived the replace-set filter.
type ReplaceSetResponse struct {
	ElectionID string   `json:"election_id"`
	KeptIDs    []string `json:"kept_ids"`
}

type CreateCustomerRequest struct {
	Name string `json:"name"`
}

type CustomerResponse struct {
	Customer CustomerDTO `json:"customer"`
}

type ListCustomersResponse struct {
	Items []CustomerDTO `json:"items"`
}
