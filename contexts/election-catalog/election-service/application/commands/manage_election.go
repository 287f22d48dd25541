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

type SaveElectionCommand struct {
	Name  string
	Type  string
	State string
}

type ManageElectionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ManageElectionUseCase) Create(ctx context.Context, cmd SaveElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.Name) == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	now := uc.Clock.Now().UTC()
	election := entities.Election{
		ElectionID: electionID,
		Name:       strings.TrimSpace(cmd.Name),
		Type:       strings.TrimSpace(cmd.Type),
		State:      strings.TrimSpace(cmd.State),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Repository.CreateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}

	logger.Info("election created",
		"event", "election_created",
		"module", "election-catalog/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
	)
	return election, nil
}

func (uc ManageElectionUseCase) Update(ctx context.Context, electionID string, cmd SaveElectionCommand) (entities.Election, error) {
	election, err := uc.Repository.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.Election{}, err
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	election.Name = strings.TrimSpace(cmd.Name)
	election.Type = strings.TrimSpace(cmd.Type)
	election.State = strings.TrimSpace(cmd.State)
	election.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Repository.UpdateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	return election, nil
}

func (uc ManageElectionUseCase) Delete(ctx context.Context, electionID string) error {
	return uc.Repository.DeleteElection(ctx, strings.TrimSpace(electionID))
}

// AssignCustomers installs the full replacement assignment set for an
// election. Ids that do not reference an existing customer are dropped, not
// rejected.
func (uc ManageElectionUseCase) AssignCustomers(ctx context.Context, electionID string, customerIDs []string) ([]string, error) {
	logger := application.ResolveLogger(uc.Logger)

	kept, err := uc.Repository.ReplaceCustomerAssignments(ctx, strings.TrimSpace(electionID), trimAll(customerIDs))
	if err != nil {
		return nil, err
	}
	logger.Info("election customers assigned",
		"event", "election_customers_assigned",
		"module", "election-catalog/election-service",
		"layer", "application",
		"election_id", electionID,
		"assigned_count", len(kept),
	)
	return kept, nil
}

// AttachForms installs the full replacement attachment set for an election.
func (uc ManageElectionUseCase) AttachForms(ctx context.Context, electionID string, formIDs []string) ([]string, error) {
	logger := application.ResolveLogger(uc.Logger)

	kept, err := uc.Repository.ReplaceFormAttachments(ctx, strings.TrimSpace(electionID), trimAll(formIDs))
	if err != nil {
		return nil, err
	}
	logger.Info("election forms attached",
		"event", "election_forms_attached",
		"module", "election-catalog/election-service",
		"layer", "application",
		"election_id", electionID,
		"attached_count", len(kept),
	)
	return kept, nil
}

func trimAll(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			trimmed = append(trimmed, strings.TrimSpace(value))
		}
	}
	return trimmed
}
