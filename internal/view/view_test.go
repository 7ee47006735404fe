package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/solviatours/backoffice/internal/models"
)

func voucherDetails() *models.SaleDetails {
	destID := uint(1)
	return &models.SaleDetails{
		Sale: models.Sale{
			ID:              1,
			VoucherCode:     "VOU-PAR-456",
			DestinationID:   &destID,
			DestinationName: "Paris",
			ClientName:      "Ana Lopez",
			Status:          "Confirmada",
			NumAdults:       2,
			NumChildren:     1,
			TotalAmount:     510,
			Currency:        "USD",
			TravelDate:      "2026-09-10",
			EmissionDate:    "2026-08-30",
			CustomItinerary: []models.ItineraryItem{{Day: 1, Name: "City tour", PriceAdult: 100, PriceChild: 50}},
			CustomIncludes:  []string{"Desayuno"},
		},
		Destination: models.Destination{ID: 1, Title: "Paris", Currency: "USD", Includes: []string{"Vuelo"}},
	}
}

func TestRenderVoucher(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderVoucher(&buf, "es", voucherDetails()); err != nil {
		t.Fatalf("RenderVoucher: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"VOU-PAR-456", "Ana Lopez", "Paris", "City tour", "Desayuno", "510.00 USD"} {
		if !strings.Contains(out, want) {
			t.Errorf("voucher missing %q", want)
		}
	}
}

func TestRenderVoucherClientOverride(t *testing.T) {
	d := voucherDetails()
	d.Sale.Hotel = &models.HotelInfo{
		HotelName:          "Hotel Marina",
		ShowPriceOnVoucher: false,
		ClientOverride:     &models.ClientOverride{Name: "Pedro Gomez", Passport: "Z999"},
	}
	var buf bytes.Buffer
	if err := RenderVoucher(&buf, "es", d); err != nil {
		t.Fatalf("RenderVoucher: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Pedro Gomez") || !strings.Contains(out, "Z999") {
		t.Error("client override fields missing from voucher")
	}
	if strings.Contains(out, "510.00 USD") {
		t.Error("price must be hidden when showPriceOnVoucher is false")
	}
	if !strings.Contains(out, "Hotel Marina") {
		t.Error("hotel block missing")
	}
}
