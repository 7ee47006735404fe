package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/solviatours/backoffice/internal/auth"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

func TestVoucherCode(t *testing.T) {
	at := time.UnixMilli(1700000123456)
	cases := []struct {
		title string
		want  string
	}{
		{"Paris", "VOU-PAR-456"},
		{"parís", "VOU-PAR-456"},
		{"", "VOU-GEN-456"},
		{"Ib", "VOU-GEN-456"},
		{"12 Cancún", "VOU-CAN-456"},
	}
	for _, c := range cases {
		if got := voucherCode(c.title, at); got != c.want {
			t.Errorf("voucherCode(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestVoucherCodePadsTimestamp(t *testing.T) {
	if got := voucherCode("Paris", time.UnixMilli(1700000123007)); got != "VOU-PAR-007" {
		t.Fatalf("timestamp digits must be zero-padded, got %q", got)
	}
}

func TestAddSaleDefaults(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableDestinations, gateway.Row{"id": uint(3), "title": "Paris"})
	s := newTestStore(gw)
	s.Load(context.Background())
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 456_000_000, time.UTC)
	s.now = func() time.Time { return fixed }

	destID := uint(3)
	ctx := auth.WithUserID(context.Background(), 7)
	rec, err := s.AddSale(ctx, models.Sale{ClientName: "Ana Lopez", DestinationID: &destID})
	if err != nil {
		t.Fatalf("AddSale: %v", err)
	}
	if rec.Status != "Confirmada" {
		t.Fatalf("status should default to confirmed, got %q", rec.Status)
	}
	if rec.DestinationName != "Paris" {
		t.Fatalf("destination name should resolve from the collection, got %q", rec.DestinationName)
	}
	if !strings.HasPrefix(rec.VoucherCode, "VOU-PAR-") {
		t.Fatalf("unexpected voucher code %q", rec.VoucherCode)
	}
	if rec.BookingDate != "2026-08-30" || rec.EmissionDate != "2026-08-30" {
		t.Fatalf("dates should default to today: booking=%q emission=%q", rec.BookingDate, rec.EmissionDate)
	}
	if rec.AssignedTo != 7 {
		t.Fatalf("acting user should be recorded as assignee, got %d", rec.AssignedTo)
	}
	sales := s.Sales()
	if len(sales) != 1 || sales[0].ID != rec.ID {
		t.Fatalf("sale should be prepended locally: %+v", sales)
	}
}

func TestAddSaleComputesTotalFromItinerary(t *testing.T) {
	gw := gateway.NewFake()
	s := newTestStore(gw)
	s.Load(context.Background())

	rec, err := s.AddSale(context.Background(), models.Sale{
		ClientName:  "Luis",
		NumAdults:   2,
		NumChildren: 1,
		CustomItinerary: []models.ItineraryItem{
			{Day: 1, Name: "City tour", PriceAdult: 100, PriceChild: 50},
			{Day: 2, Name: "Museo", PriceAdult: 80, PriceChild: 0},
		},
	})
	if err != nil {
		t.Fatalf("AddSale: %v", err)
	}
	if rec.TotalAmount != 410 {
		t.Fatalf("total = %v, want 410", rec.TotalAmount)
	}
}

func TestUpdateSaleRecomputesTotal(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableSales, gateway.Row{"id": uint(1), "client_name": "Luis", "status": "confirmada", "total_amount": 410.0})
	s := newTestStore(gw)
	s.Load(context.Background())

	rec, err := s.UpdateSale(context.Background(), models.Sale{
		ID:          1,
		ClientName:  "Luis",
		Status:      "Confirmada",
		NumAdults:   2,
		NumChildren: 3,
		CustomItinerary: []models.ItineraryItem{
			{Day: 1, Name: "City tour", PriceAdult: 100, PriceChild: 50},
			{Day: 2, Name: "Museo", PriceAdult: 80, PriceChild: 0},
		},
	})
	if err != nil {
		t.Fatalf("UpdateSale: %v", err)
	}
	if rec.TotalAmount != 510 {
		t.Fatalf("total = %v, want 510", rec.TotalAmount)
	}
}

func TestGetSaleDetailsJoinsDestination(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableDestinations, gateway.Row{"id": uint(2), "title": "Roma", "includes": []string{"Vuelo"}})
	gw.Seed(gateway.TableSales, gateway.Row{"id": uint(1), "destination_id": uint(2), "destination_name": "Roma", "status": "confirmada"})
	s := newTestStore(gw)
	s.Load(context.Background())

	d, err := s.GetSaleDetails(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSaleDetails: %v", err)
	}
	if d.Destination.Title != "Roma" {
		t.Fatalf("expected live destination, got %+v", d.Destination)
	}
}

func TestGetSaleDetailsDeletedDestination(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableSales, gateway.Row{"id": uint(1), "destination_id": uint(99), "destination_name": "Atlántida", "status": "confirmada"})
	s := newTestStore(gw)
	s.Load(context.Background())

	d, err := s.GetSaleDetails(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSaleDetails must not fail for a deleted destination: %v", err)
	}
	if d.Destination.Title != "Atlántida (Eliminado)" {
		t.Fatalf("placeholder title = %q", d.Destination.Title)
	}
	if d.Destination.Includes == nil || len(d.Destination.Includes) != 0 {
		t.Fatalf("placeholder includes must be empty, got %+v", d.Destination.Includes)
	}
}

func TestGetSaleDetailsUnknownSale(t *testing.T) {
	s := newTestStore(gateway.NewFake())
	if _, err := s.GetSaleDetails(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
