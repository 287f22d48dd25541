package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"electionportal/contexts/election-catalog/election-service/adapters/memory"
	domainerrors "electionportal/contexts/election-catalog/election-service/domain/errors"
)

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

func newElectionUseCase(store *memory.Store) ManageElectionUseCase {
	return ManageElectionUseCase{
		Repository: store,
		Clock:      fixedClock{at: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		IDGen:      &sequenceIDs{},
	}
}

func TestCreateElectionTrimsAndStampsTimestamps(t *testing.T) {
	store := memory.NewStore()
	uc := newElectionUseCase(store)

	election, err := uc.Create(context.Background(), SaveElectionCommand{
		Name:  "  City Council 2026  ",
		Type:  " municipal ",
		State: " CA ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if election.ElectionID != "id-1" {
		t.Fatalf("expected generated id, got %s", election.ElectionID)
	}
	if election.Name != "City Council 2026" || election.Type != "municipal" || election.State != "CA" {
		t.Fatalf("expected trimmed fields, got %+v", election)
	}
	if !election.CreatedAt.Equal(election.UpdatedAt) {
		t.Fatal("create must stamp created_at and updated_at together")
	}

	stored, err := store.GetElection(context.Background(), election.ElectionID)
	if err != nil {
		t.Fatalf("stored election not found: %v", err)
	}
	if stored.Name != "City Council 2026" {
		t.Fatalf("unexpected stored name %q", stored.Name)
	}
}

func TestCreateElectionRejectsBlankName(t *testing.T) {
	uc := newElectionUseCase(memory.NewStore())

	_, err := uc.Create(context.Background(), SaveElectionCommand{Name: "   "})
	if !errors.Is(err, domainerrors.ErrInvalidElectionInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUpdateElectionAdvancesUpdatedAtOnly(t *testing.T) {
	store := memory.NewStore()
	uc := newElectionUseCase(store)

	created, err := uc.Create(context.Background(), SaveElectionCommand{Name: "City Council 2026"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	later := ManageElectionUseCase{
		Repository: store,
		Clock:      fixedClock{at: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)},
		IDGen:      &sequenceIDs{},
	}
	updated, err := later.Update(context.Background(), created.ElectionID, SaveElectionCommand{
		Name:  "City Council 2026 (rescheduled)",
		Type:  "municipal",
		State: "CA",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must preserve created_at")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("update must advance updated_at")
	}
}

func TestUpdateUnknownElection(t *testing.T) {
	uc := newElectionUseCase(memory.NewStore())

	_, err := uc.Update(context.Background(), "ghost", SaveElectionCommand{Name: "x"})
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssignCustomersDropsBlankIDs(t *testing.T) {
	store := memory.NewStore()
	uc := newElectionUseCase(store)

	created, err := uc.Create(context.Background(), SaveElectionCommand{Name: "City Council 2026"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	customer, err := newCustomerUseCase(store).Create(context.Background(), CreateCustomerCommand{Name: "Acme County"})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	kept, err := uc.AssignCustomers(context.Background(), created.ElectionID, []string{
		"  " + customer.CustomerID + "  ",
		"   ",
		"",
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if len(kept) != 1 || kept[0] != customer.CustomerID {
		t.Fatalf("expected single trimmed id kept, got %v", kept)
	}
}

func newCustomerUseCase(store *memory.Store) ManageCustomerUseCase {
	return ManageCustomerUseCase{
		Repository: store,
		Clock:      fixedClock{at: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		IDGen:      &sequenceIDs{next: 100},
	}
}
