package store

import (
	"context"
	"testing"

	"github.com/solviatours/backoffice/internal/gateway"
)

func TestStats(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableDestinations,
		gateway.Row{"id": uint(1), "title": "Cusco", "active": true},
		gateway.Row{"id": uint(2), "title": "Retirado", "active": false},
	)
	gw.Seed(gateway.TableSales,
		gateway.Row{"id": uint(1), "client_name": "Ana Lopez", "total_amount": 100.0},
		gateway.Row{"id": uint(2), "client_name": "Ana Lopez", "total_amount": 250.0},
		gateway.Row{"id": uint(3), "client_name": "Luis Paz", "total_amount": 50.0},
		gateway.Row{"id": uint(4), "total_amount": 25.0}, // walk-in without name
	)
	s := newTestStore(gw)
	s.Load(context.Background())

	got := s.Stats()
	if got.TotalRevenue != 425 {
		t.Errorf("revenue = %v, want 425", got.TotalRevenue)
	}
	if got.ActiveDestinations != 1 {
		t.Errorf("active destinations = %d, want 1", got.ActiveDestinations)
	}
	if got.TotalSales != 4 {
		t.Errorf("total sales = %d, want 4", got.TotalSales)
	}
	// Unique clients count distinct non-empty name snapshots, not ids.
	if got.UniqueClients != 2 {
		t.Errorf("unique clients = %d, want 2", got.UniqueClients)
	}
}
