package store

import (
	"context"
	"strings"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

// AddExcursion creates an activity under a destination. The destination
// title is resolved locally so the new record is displayable immediately.
func (s *Store) AddExcursion(ctx context.Context, e models.Excursion) (*models.Excursion, error) {
	if strings.TrimSpace(e.Name) == "" {
		return nil, s.failValidation(ctx, "add_excursion", "validation_name")
	}
	if e.PriceAdult < 0 || e.PriceChild < 0 {
		return nil, s.failValidation(ctx, "add_excursion", "validation_price")
	}
	rows, err := s.gw.Insert(ctx, gateway.TableExcursions, []gateway.Row{excursionRow(e)})
	if err != nil {
		return nil, s.fail(ctx, "add_excursion", "save_failed", err)
	}
	rec := normalizeExcursion(rows[0])
	if rec.DestinationID != nil {
		rec.DestinationTitle = s.destinationTitle(*rec.DestinationID)
	}

	s.mu.Lock()
	s.excursions = insertFront(s.excursions, rec, rec.ID, excursionID)
	s.mu.Unlock()

	s.ok(ctx, "add_excursion", "excursion_created")
	return &rec, nil
}

// UpdateExcursion rewrites an activity's editable fields.
func (s *Store) UpdateExcursion(ctx context.Context, e models.Excursion) (*models.Excursion, error) {
	if strings.TrimSpace(e.Name) == "" {
		return nil, s.failValidation(ctx, "update_excursion", "validation_name")
	}
	if e.PriceAdult < 0 || e.PriceChild < 0 {
		return nil, s.failValidation(ctx, "update_excursion", "validation_price")
	}
	rows, err := s.gw.Update(ctx, gateway.TableExcursions, excursionRow(e), gateway.Filter{"id": e.ID})
	if err != nil {
		return nil, s.fail(ctx, "update_excursion", "save_failed", err)
	}
	if len(rows) == 0 {
		return nil, s.fail(ctx, "update_excursion", "permission_denied", ErrPermissionDenied)
	}
	rec := normalizeExcursion(rows[0])
	if rec.DestinationID != nil {
		rec.DestinationTitle = s.destinationTitle(*rec.DestinationID)
	}

	s.mu.Lock()
	s.excursions = replaceByID(s.excursions, rec, rec.ID, excursionID)
	s.mu.Unlock()

	s.ok(ctx, "update_excursion", "excursion_updated")
	return &rec, nil
}

// DeleteExcursion removes an activity.
func (s *Store) DeleteExcursion(ctx context.Context, id uint) error {
	rows, err := s.gw.Delete(ctx, gateway.TableExcursions, gateway.Filter{"id": id})
	if err != nil {
		return s.fail(ctx, "delete_excursion", "delete_failed", err)
	}
	if len(rows) == 0 {
		return s.fail(ctx, "delete_excursion", "permission_denied", ErrPermissionDenied)
	}

	s.mu.Lock()
	s.excursions = removeByID(s.excursions, id, excursionID)
	s.mu.Unlock()

	s.ok(ctx, "delete_excursion", "excursion_deleted")
	return nil
}
