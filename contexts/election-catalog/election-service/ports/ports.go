package ports

import (
	"context"
	"time"

	"electionportal/contexts/election-catalog/election-service/domain/entities"
)

type FormRef struct {
	FormID string
	Name   string
}

type WebhookRef struct {
	WebhookID string
	EventType string
	URL       string
}

// ElectionDetail is the aggregate read view: the election plus its assigned
// customers, attached forms, and registered webhooks.
type ElectionDetail struct {
	Election  entities.Election
	Customers []entities.Customer
	Forms     []FormRef
	Webhooks  []WebhookRef
}

type Repository interface {
	CreateElection(ctx context.Context, election entities.Election) error
	UpdateElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	GetElectionDetail(ctx context.Context, electionID string) (ElectionDetail, error)
	ListElections(ctx context.Context) ([]entities.Election, error)
	DeleteElection(ctx context.Context, electionID string) error

	CreateCustomer(ctx context.Context, customer entities.Customer) error
	GetCustomer(ctx context.Context, customerID string) (entities.Customer, error)
	ListCustomers(ctx context.Context) ([]entities.Customer, error)

	// ReplaceCustomerAssignments discards the election's existing assignment
	// set and installs the given one atomically. Unknown customer ids are
	// filtered out; the kept ids are returned in input order. Readers never
	// observe a partially replaced set.
	ReplaceCustomerAssignments(ctx context.Context, electionID string, customerIDs []string) ([]string, error)

	// ReplaceFormAttachments is the same replace-set operation for the
	// election↔form association.
	ReplaceFormAttachments(ctx context.Context, electionID string, formIDs []string) ([]string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
