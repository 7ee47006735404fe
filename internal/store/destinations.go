package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

// AddDestination creates a destination and prepends it locally.
func (s *Store) AddDestination(ctx context.Context, d models.Destination) (*models.Destination, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, s.failValidation(ctx, "add_destination", "validation_title")
	}
	rows, err := s.gw.Insert(ctx, gateway.TableDestinations, []gateway.Row{destinationRow(d)})
	if err != nil {
		return nil, s.fail(ctx, "add_destination", "save_failed", err)
	}
	rec := normalizeDestination(rows[0], nil)

	s.mu.Lock()
	s.destinations = insertFront(s.destinations, rec, rec.ID, destinationID)
	s.mu.Unlock()

	s.ok(ctx, "add_destination", "destination_created")
	return &rec, nil
}

// UpdateDestination rewrites a destination's editable fields. The local
// image list survives the replacement; it is not part of the write.
func (s *Store) UpdateDestination(ctx context.Context, d models.Destination) (*models.Destination, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, s.failValidation(ctx, "update_destination", "validation_title")
	}
	rows, err := s.gw.Update(ctx, gateway.TableDestinations, destinationRow(d), gateway.Filter{"id": d.ID})
	if err != nil {
		return nil, s.fail(ctx, "update_destination", "save_failed", err)
	}
	if len(rows) == 0 {
		return nil, s.fail(ctx, "update_destination", "permission_denied", ErrPermissionDenied)
	}

	s.mu.Lock()
	var images []models.DestinationImage
	for _, existing := range s.destinations {
		if existing.ID == d.ID {
			images = existing.Images
			break
		}
	}
	rec := normalizeDestination(rows[0], images)
	s.destinations = replaceByID(s.destinations, rec, rec.ID, destinationID)
	s.mu.Unlock()

	s.ok(ctx, "update_destination", "destination_updated")
	return &rec, nil
}

// DeleteDestination removes a destination and everything it owns: its
// excursions and gallery images go first, then the destination row. A
// destination still referenced by sales is protected by the backend's
// foreign key and reported as such, never silently ignored.
func (s *Store) DeleteDestination(ctx context.Context, id uint) error {
	if _, err := s.gw.Delete(ctx, gateway.TableExcursions, gateway.Filter{"destination_id": id}); err != nil {
		return s.fail(ctx, "delete_destination", "delete_failed", err)
	}
	if _, err := s.gw.Delete(ctx, gateway.TableDestinationImages, gateway.Filter{"destination_id": id}); err != nil {
		return s.fail(ctx, "delete_destination", "delete_failed", err)
	}
	rows, err := s.gw.Delete(ctx, gateway.TableDestinations, gateway.Filter{"id": id})
	if err != nil {
		if gateway.IsForeignKey(err) {
			s.fail(ctx, "delete_destination", "destination_has_sales", err)
			return fmt.Errorf("delete_destination: %w", ErrHasDependents)
		}
		return s.fail(ctx, "delete_destination", "delete_failed", err)
	}
	if len(rows) == 0 {
		return s.fail(ctx, "delete_destination", "permission_denied", ErrPermissionDenied)
	}

	s.mu.Lock()
	s.destinations = removeByID(s.destinations, id, destinationID)
	kept := make([]models.Excursion, 0, len(s.excursions))
	for _, ex := range s.excursions {
		if ex.DestinationID != nil && *ex.DestinationID == id {
			continue
		}
		kept = append(kept, ex)
	}
	s.excursions = kept
	s.mu.Unlock()

	s.ok(ctx, "delete_destination", "destination_deleted")
	return nil
}

// AddDestinationImages uploads gallery entries: one row per URL, display
// order equal to its index in the input, appended to the local image list
// in the same order.
func (s *Store) AddDestinationImages(ctx context.Context, destID uint, urls []string) ([]models.DestinationImage, error) {
	if len(urls) == 0 {
		return nil, s.failValidation(ctx, "add_destination_images", "required")
	}
	rows := make([]gateway.Row, 0, len(urls))
	for i, u := range urls {
		rows = append(rows, gateway.Row{"destination_id": destID, "url": u, "display_order": i})
	}
	inserted, err := s.gw.Insert(ctx, gateway.TableDestinationImages, rows)
	if err != nil {
		return nil, s.fail(ctx, "add_destination_images", "save_failed", err)
	}
	images := make([]models.DestinationImage, 0, len(inserted))
	for _, r := range inserted {
		images = append(images, normalizeImage(r))
	}

	s.mu.Lock()
	for i, d := range s.destinations {
		if d.ID == destID {
			d.Images = append(append([]models.DestinationImage{}, d.Images...), images...)
			s.destinations[i] = d
			break
		}
	}
	s.mu.Unlock()

	s.ok(ctx, "add_destination_images", "images_uploaded")
	return images, nil
}

// DeleteDestinationImage removes one gallery entry.
func (s *Store) DeleteDestinationImage(ctx context.Context, destID, imageID uint) error {
	rows, err := s.gw.Delete(ctx, gateway.TableDestinationImages, gateway.Filter{"id": imageID})
	if err != nil {
		return s.fail(ctx, "delete_destination_image", "delete_failed", err)
	}
	if len(rows) == 0 {
		return s.fail(ctx, "delete_destination_image", "permission_denied", ErrPermissionDenied)
	}

	s.mu.Lock()
	for i, d := range s.destinations {
		if d.ID == destID {
			d.Images = removeByID(d.Images, imageID, func(img models.DestinationImage) uint { return img.ID })
			s.destinations[i] = d
			break
		}
	}
	s.mu.Unlock()

	s.ok(ctx, "delete_destination_image", "image_deleted")
	return nil
}
