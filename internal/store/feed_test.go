package store

import (
	"context"
	"testing"
	"time"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

func TestInsertEventDedupesByID(t *testing.T) {
	sales := []models.Sale{{ID: 1, ClientName: "Ana"}}
	e := gateway.ChangeEvent{
		Table: gateway.TableSales,
		Kind:  gateway.EventInsert,
		Row:   gateway.Row{"id": uint(1), "client_name": "Ana"},
	}
	out := applySaleEvent(sales, e)
	if len(out) != 1 {
		t.Fatalf("feed echo of a local insert must not duplicate, got %d records", len(out))
	}
}

func TestInsertEventPrependsNewRecord(t *testing.T) {
	sales := []models.Sale{{ID: 1}}
	e := gateway.ChangeEvent{
		Table: gateway.TableSales,
		Kind:  gateway.EventInsert,
		Row:   gateway.Row{"id": uint(2), "client_name": "Luis"},
	}
	out := applySaleEvent(sales, e)
	if len(out) != 2 || out[0].ID != 2 {
		t.Fatalf("external insert should be prepended: %+v", out)
	}
}

func TestUpdateEventPreservesDestinationImages(t *testing.T) {
	dests := []models.Destination{{
		ID:     1,
		Title:  "Cusco",
		Images: []models.DestinationImage{{ID: 1, URL: "a.jpg"}},
	}}
	e := gateway.ChangeEvent{
		Table: gateway.TableDestinations,
		Kind:  gateway.EventUpdate,
		Row:   gateway.Row{"id": uint(1), "title": "Cusco Imperial"},
	}
	out, _ := applyDestinationEvent(dests, nil, e)
	if out[0].Title != "Cusco Imperial" {
		t.Fatalf("update not applied: %+v", out[0])
	}
	if len(out[0].Images) != 1 {
		t.Fatalf("feed update must not wipe the local gallery: %+v", out[0].Images)
	}
}

func TestDeleteEventPurgesDependentExcursions(t *testing.T) {
	destID := uint(1)
	dests := []models.Destination{{ID: 1}}
	excs := []models.Excursion{
		{ID: 1, DestinationID: &destID},
		{ID: 2},
	}
	e := gateway.ChangeEvent{
		Table: gateway.TableDestinations,
		Kind:  gateway.EventDelete,
		Row:   gateway.Row{"id": uint(1)},
	}
	outDests, outExcs := applyDestinationEvent(dests, excs, e)
	if len(outDests) != 0 {
		t.Fatalf("destination should be removed: %+v", outDests)
	}
	if len(outExcs) != 1 || outExcs[0].ID != 2 {
		t.Fatalf("excursions of the deleted destination should be purged: %+v", outExcs)
	}
}

func TestClientUpdateEventPreservesIdentity(t *testing.T) {
	clients := []models.Client{{
		ID:       1,
		Name:     "Ana",
		Identity: &models.ClientIdentity{PassportNumber: "X123"},
	}}
	e := gateway.ChangeEvent{
		Table: gateway.TableClients,
		Kind:  gateway.EventUpdate,
		Row:   gateway.Row{"id": uint(1), "name": "Ana María"},
	}
	out := applyClientEvent(clients, e)
	if out[0].Identity == nil || out[0].Identity.PassportNumber != "X123" {
		t.Fatalf("identity must survive a feed update: %+v", out[0])
	}
}

func TestFeedEndToEnd(t *testing.T) {
	gw := gateway.NewFake()
	s := newTestStore(gw)
	s.Load(context.Background())
	s.Start()
	defer s.Close()

	gw.Emit(gateway.ChangeEvent{
		Table: gateway.TableSales,
		Kind:  gateway.EventInsert,
		Row:   gateway.Row{"id": uint(9), "client_name": "Externa", "status": "pendiente"},
	})

	deadline := time.After(2 * time.Second)
	for {
		if sales := s.Sales(); len(sales) == 1 && sales[0].ID == 9 {
			if sales[0].Status != "Pendiente" {
				t.Fatalf("feed rows must be normalized: %+v", sales[0])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("feed event never reached the collection")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestCloseReleasesSubscriptions(t *testing.T) {
	gw := gateway.NewFake()
	s := newTestStore(gw)
	s.Load(context.Background())
	s.Start()
	s.Close()

	// After Close, emitted events must not be applied.
	gw.Emit(gateway.ChangeEvent{
		Table: gateway.TableSales,
		Kind:  gateway.EventInsert,
		Row:   gateway.Row{"id": uint(5)},
	})
	time.Sleep(50 * time.Millisecond)
	if got := len(s.Sales()); got != 0 {
		t.Fatalf("closed store must not consume events, got %d sales", got)
	}
}
