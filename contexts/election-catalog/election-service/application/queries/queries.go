package queries

import (
	"context"
	"strings"

	"electionportal/contexts/election-catalog/election-service/domain/entities"
	"electionportal/contexts/election-catalog/election-service/ports"
)

type QueryUseCase struct {
	Repository ports.Repository
}

func (uc QueryUseCase) GetElection(ctx context.Context, electionID string) (ports.ElectionDetail, error) {
	return uc.Repository.GetElectionDetail(ctx, strings.TrimSpace(electionID))
}

func (uc QueryUseCase) ListElections(ctx context.Context) ([]entities.Election, error) {
	return uc.Repository.ListElections(ctx)
}

func (uc QueryUseCase) GetCustomer(ctx context.Context, customerID string) (entities.Customer, error) {
	return uc.Repository.GetCustomer(ctx, strings.TrimSpace(customerID))
}

func (uc QueryUseCase) ListCustomers(ctx context.Context) ([]entities.Customer, error) {
	return uc.Repository.ListCustomers(ctx)
}
