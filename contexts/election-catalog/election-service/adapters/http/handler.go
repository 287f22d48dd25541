package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"electionportal/contexts/election-catalog/election-service/application/commands"
	"electionportal/contexts/election-catalog/election-service/application/queries"
	"electionportal/contexts/election-catalog/election-service/domain/entities"
	"electionportal/contexts/election-catalog/election-service/ports"
	httptransport "electionportal/contexts/election-catalog/election-service/transport/http"
)

type Handler struct {
	ManageElection commands.ManageElectionUseCase
	ManageCustomer commands.ManageCustomerUseCase
	Queries        queries.QueryUseCase
	Logger         *slog.Logger
}

func (h Handler) CreateElectionHandler(ctx context.Context, req httptransport.SaveElectionRequest) (httptransport.ElectionResponse, error) {
	item, err := h.ManageElection.Create(ctx, commands.SaveElectionCommand{
		Name:  req.Name,
		Type:  req.Type,
		State: req.State,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return httptransport.ElectionResponse{Election: mapElection(item)}, nil
}

func (h Handler) UpdateElectionHandler(ctx context.Context, electionID string, req httptransport.SaveElectionRequest) (httptransport.ElectionResponse, error) {
	item, err := h.ManageElection.Update(ctx, electionID, commands.SaveElectionCommand{
		Name:  req.Name,
		Type:  req.Type,
		State: req.State,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return httptransport.ElectionResponse{Election: mapElection(item)}, nil
}

func (h Handler) DeleteElectionHandler(ctx context.Context, electionID string) error {
	return h.ManageElection.Delete(ctx, electionID)
}

func (h Handler) GetElectionHandler(ctx context.Context, electionID string) (httptransport.ElectionDetailResponse, error) {
	detail, err := h.Queries.GetElection(ctx, electionID)
	if err != nil {
		return httptransport.ElectionDetailResponse{}, err
	}
	return mapElectionDetail(detail), nil
}

func (h Handler) ListElectionsHandler(ctx context.Context) (httptransport.ListElectionsResponse, error) {
	items, err := h.Queries.ListElections(ctx)
	if err != nil {
		return httptransport.ListElectionsResponse{}, err
	}
	result := make([]httptransport.ElectionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapElection(item))
	}
	return httptransport.ListElectionsResponse{Items: result}, nil
}

func (h Handler) AssignCustomersHandler(ctx context.Context, electionID string, req httptransport.AssignCustomersRequest) (httptransport.ReplaceSetResponse, error) {
	kept, err := h.ManageElection.AssignCustomers(ctx, electionID, req.CustomerIDs)
	if err != nil {
		return httptransport.ReplaceSetResponse{}, err
	}
	return httptransport.ReplaceSetResponse{ElectionID: electionID, KeptIDs: keptOrEmpty(kept)}, nil
}

func (h Handler) AttachFormsHandler(ctx context.Context, electionID string, req httptransport.AttachFormsRequest) (httptransport.ReplaceSetResponse, error) {
	kept, err := h.ManageElection.AttachForms(ctx, electionID, req.FormIDs)
	if err != nil {
		return httptransport.ReplaceSetResponse{}, err
	}
	return httptransport.ReplaceSetResponse{ElectionID: electionID, KeptIDs: keptOrEmpty(kept)}, nil
}

func (h Handler) CreateCustomerHandler(ctx context.Context, req httptransport.CreateCustomerRequest) (httptransport.CustomerResponse, error) {
	item, err := h.ManageCustomer.Create(ctx, commands.CreateCustomerCommand{Name: req.Name})
	if err != nil {
		return httptransport.CustomerResponse{}, err
	}
	return httptransport.CustomerResponse{Customer: mapCustomer(item)}, nil
}

func (h Handler) GetCustomerHandler(ctx context.Context, customerID string) (httptransport.CustomerResponse, error) {
	item, err := h.Queries.GetCustomer(ctx, customerID)
	if err != nil {
		return httptransport.CustomerResponse{}, err
	}
	return httptransport.CustomerResponse{Customer: mapCustomer(item)}, nil
}

func (h Handler) ListCustomersHandler(ctx context.Context) (httptransport.ListCustomersResponse, error) {
	items, err := h.Queries.ListCustomers(ctx)
	if err != nil {
		return httptransport.ListCustomersResponse{}, err
	}
	result := make([]httptransport.CustomerDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCustomer(item))
	}
	return httptransport.ListCustomersResponse{Items: result}, nil
}

func mapElection(item entities.Election) httptransport.ElectionDTO {
	return httptransport.ElectionDTO{
		ElectionID: item.ElectionID,
		Name:       item.Name,
		Type:       item.Type,
		State:      item.State,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  item.UpdatedAt.Format(time.RFC3339),
	}
}

func mapCustomer(item entities.Customer) httptransport.CustomerDTO {
	return httptransport.CustomerDTO{
		CustomerID: item.CustomerID,
		Name:       item.Name,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
	}
}

func mapElectionDetail(detail ports.ElectionDetail) httptransport.ElectionDetailResponse {
	resp := httptransport.ElectionDetailResponse{
		Election:  mapElection(detail.Election),
		Customers: make([]httptransport.CustomerDTO, 0, len(detail.Customers)),
		Forms:     make([]httptransport.FormRefDTO, 0, len(detail.Forms)),
		Webhooks:  make([]httptransport.WebhookRefDTO, 0, len(detail.Webhooks)),
	}
	for _, customer := range detail.Customers {
		resp.Customers = append(resp.Customers, mapCustomer(customer))
	}
	for _, form := range detail.Forms {
		resp.Forms = append(resp.Forms, httptransport.FormRefDTO{FormID: form.FormID, Name: form.Name})
	}
	for _, webhook := range detail.Webhooks {
		resp.Webhooks = append(resp.Webhooks, httptransport.WebhookRefDTO{
			WebhookID: webhook.WebhookID,
			EventType: webhook.EventType,
			URL:       webhook.URL,
		})
	}
	return resp
}

func keptOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
