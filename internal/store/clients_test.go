package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

func TestAddClientWithIdentity(t *testing.T) {
	gw := gateway.NewFake()
	s := newTestStore(gw)
	s.Load(context.Background())

	rec, err := s.AddClient(context.Background(), models.Client{
		Name:     "Ana",
		Surname:  "Lopez",
		Identity: &models.ClientIdentity{PassportNumber: "X123", Nationality: "PE"},
	})
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if rec.Identity == nil || rec.Identity.PassportNumber != "X123" {
		t.Fatalf("identity not attached: %+v", rec.Identity)
	}
	if rows := gw.Rows(gateway.TableClientIdentities); len(rows) != 1 {
		t.Fatalf("identity row not persisted, got %d", len(rows))
	}
}

func TestUpdateClientPreservesIdentity(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableClients, gateway.Row{"id": uint(1), "name": "Ana", "surname": "Lopez"})
	gw.Seed(gateway.TableClientIdentities, gateway.Row{"id": uint(1), "client_id": uint(1), "passport_number": "X123"})
	s := newTestStore(gw)
	s.Load(context.Background())

	rec, err := s.UpdateClient(context.Background(), models.Client{ID: 1, Name: "Ana María", Surname: "Lopez"})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if rec.Identity == nil || rec.Identity.PassportNumber != "X123" {
		t.Fatalf("stored identity must survive an update without identity data: %+v", rec.Identity)
	}
}

func TestUpdateClientUpsertsIdentity(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableClients, gateway.Row{"id": uint(1), "name": "Ana"})
	s := newTestStore(gw)
	s.Load(context.Background())

	rec, err := s.UpdateClient(context.Background(), models.Client{
		ID:       1,
		Name:     "Ana",
		Identity: &models.ClientIdentity{PassportNumber: "Z999"},
	})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if rec.Identity == nil || rec.Identity.PassportNumber != "Z999" {
		t.Fatalf("identity should be inserted for a client without one: %+v", rec.Identity)
	}
	if rows := gw.Rows(gateway.TableClientIdentities); len(rows) != 1 {
		t.Fatalf("expected 1 identity row, got %d", len(rows))
	}
}

func TestDeleteClientWithSalesIsRejected(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableClients, gateway.Row{"id": uint(1), "name": "Ana"})
	s := newTestStore(gw)
	s.Load(context.Background())
	gw.FailNext("delete", gateway.TableClients, fmt.Errorf("violates constraint: %w", gateway.ErrForeignKey))

	err := s.DeleteClient(context.Background(), 1)
	if !errors.Is(err, ErrHasDependents) {
		t.Fatalf("expected ErrHasDependents, got %v", err)
	}
	if got := len(s.Clients()); got != 1 {
		t.Fatal("rejected delete must leave local state untouched")
	}
}

func TestDeleteClientRemovesIdentity(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableClients, gateway.Row{"id": uint(1), "name": "Ana"})
	gw.Seed(gateway.TableClientIdentities, gateway.Row{"id": uint(1), "client_id": uint(1), "passport_number": "X123"})
	s := newTestStore(gw)
	s.Load(context.Background())

	if err := s.DeleteClient(context.Background(), 1); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if rows := gw.Rows(gateway.TableClientIdentities); len(rows) != 0 {
		t.Fatalf("identity row should be deleted with the client, %d left", len(rows))
	}
	if got := len(s.Clients()); got != 0 {
		t.Fatalf("client should be removed locally, %d left", got)
	}
}
