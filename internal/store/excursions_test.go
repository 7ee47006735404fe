package store

import (
	"context"
	"errors"
	"testing"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

func TestAddExcursionResolvesDestinationTitle(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableDestinations, gateway.Row{"id": uint(3), "title": "Cartagena"})
	s := newTestStore(gw)
	s.Load(context.Background())

	destID := uint(3)
	rec, err := s.AddExcursion(context.Background(), models.Excursion{
		Name: "Islas del Rosario", DestinationID: &destID, PriceAdult: 45,
	})
	if err != nil {
		t.Fatalf("AddExcursion: %v", err)
	}
	if rec.DestinationTitle != "Cartagena" {
		t.Fatalf("destination title = %q", rec.DestinationTitle)
	}
	if got := s.Excursions(); len(got) != 1 || got[0].Name != "Islas del Rosario" {
		t.Fatalf("excursions = %+v", got)
	}
}

func TestExcursionValidation(t *testing.T) {
	s := newTestStore(gateway.NewFake())

	if _, err := s.AddExcursion(context.Background(), models.Excursion{Name: "  "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name should fail validation, got %v", err)
	}
	if _, err := s.AddExcursion(context.Background(), models.Excursion{Name: "Tour", PriceAdult: -1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative price should fail validation, got %v", err)
	}
	if _, err := s.UpdateExcursion(context.Background(), models.Excursion{ID: 1, Name: "Tour", PriceChild: -5}); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative child price should fail validation, got %v", err)
	}
}

func TestUpdateExcursionZeroRows(t *testing.T) {
	s := newTestStore(gateway.NewFake())
	_, err := s.UpdateExcursion(context.Background(), models.Excursion{ID: 42, Name: "Nada"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDeleteExcursion(t *testing.T) {
	gw := gateway.NewFake()
	gw.Seed(gateway.TableExcursions,
		gateway.Row{"id": uint(1), "name": "Snorkel"},
		gateway.Row{"id": uint(2), "name": "Kayak"})
	s := newTestStore(gw)
	s.Load(context.Background())

	if err := s.DeleteExcursion(context.Background(), 1); err != nil {
		t.Fatalf("DeleteExcursion: %v", err)
	}
	if got := s.Excursions(); len(got) != 1 || got[0].Name != "Kayak" {
		t.Fatalf("excursions after delete = %+v", got)
	}
	if len(gw.Rows(gateway.TableExcursions)) != 1 {
		t.Fatal("remote row not removed")
	}
}
