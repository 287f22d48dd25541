package commands

import (
	"context"
	"log/slog"
	"strings"

	application "electionportal/contexts/election-catalog/election-service/application"
	"electionportal/contexts/election-catalog/election-service/domain/entities"
	domainerrors "electionportal/contexts/election-catalog/election-service/domain/errors"
	"electionportal/contexts/election-catalog/election-service/ports"
)

type CreateCustomerCommand struct {
	Name string
}

type ManageCustomerUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ManageCustomerUseCase) Create(ctx context.Context, cmd CreateCustomerCommand) (entities.Customer, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.Name) == "" {
		return entities.Customer{}, domainerrors.ErrInvalidCustomerInput
	}
	customerID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Customer{}, err
	}
	customer := entities.Customer{
		CustomerID: customerID,
		Name:       strings.TrimSpace(cmd.Name),
		CreatedAt:  uc.Clock.Now().UTC(),
	}
	if err := uc.Repository.CreateCustomer(ctx, customer); err != nil {
		return entities.Customer{}, err
	}

	logger.Info("customer created",
		"event", "customer_created",
		"module", "election-catalog/election-service",
		"layer", "application",
		"customer_id", customer.CustomerID,
	)
	return customer, nil
}
