package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

// AddClient creates a client and, when passport data was captured, the
// companion identity row. An identity write failure is logged but does not
// undo the client: the record exists, just without passport data.
func (s *Store) AddClient(ctx context.Context, c models.Client) (*models.Client, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, s.failValidation(ctx, "add_client", "validation_name")
	}
	rows, err := s.gw.Insert(ctx, gateway.TableClients, []gateway.Row{clientRow(c)})
	if err != nil {
		return nil, s.fail(ctx, "add_client", "save_failed", err)
	}
	rec := normalizeClient(rows[0], nil)

	if c.Identity != nil {
		idRows, err := s.gw.Insert(ctx, gateway.TableClientIdentities, []gateway.Row{identityRow(rec.ID, *c.Identity)})
		if err != nil {
			s.log.Warn("client identity insert failed", "client_id", rec.ID, "error", err)
		} else {
			rec.Identity = normalizeIdentity(idRows[0])
		}
	}

	s.mu.Lock()
	s.clients = insertFront(s.clients, rec, rec.ID, clientID)
	s.mu.Unlock()

	s.ok(ctx, "add_client", "client_created")
	return &rec, nil
}

// UpdateClient rewrites a client's fields and upserts the identity row:
// updated in place when one exists, inserted when the form added passport
// data to a client that had none. A client whose form carries no identity
// keeps whatever identity was already stored.
func (s *Store) UpdateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, s.failValidation(ctx, "update_client", "validation_name")
	}
	rows, err := s.gw.Update(ctx, gateway.TableClients, clientRow(c), gateway.Filter{"id": c.ID})
	if err != nil {
		return nil, s.fail(ctx, "update_client", "save_failed", err)
	}
	if len(rows) == 0 {
		return nil, s.fail(ctx, "update_client", "permission_denied", ErrPermissionDenied)
	}
	rec := normalizeClient(rows[0], nil)

	if c.Identity != nil {
		patch := identityRow(c.ID, *c.Identity)
		idRows, err := s.gw.Update(ctx, gateway.TableClientIdentities, patch, gateway.Filter{"client_id": c.ID})
		if err == nil && len(idRows) == 0 {
			idRows, err = s.gw.Insert(ctx, gateway.TableClientIdentities, []gateway.Row{patch})
		}
		if err != nil {
			s.log.Warn("client identity upsert failed", "client_id", c.ID, "error", err)
		} else if len(idRows) > 0 {
			rec.Identity = normalizeIdentity(idRows[0])
		}
	}

	s.mu.Lock()
	if rec.Identity == nil {
		for _, existing := range s.clients {
			if existing.ID == rec.ID {
				rec.Identity = existing.Identity
				break
			}
		}
	}
	s.clients = replaceByID(s.clients, rec, rec.ID, clientID)
	s.mu.Unlock()

	s.ok(ctx, "update_client", "client_updated")
	return &rec, nil
}

// DeleteClient removes a client and its identity row. A client referenced
// by sales is protected by the backend's foreign key.
func (s *Store) DeleteClient(ctx context.Context, id uint) error {
	if _, err := s.gw.Delete(ctx, gateway.TableClientIdentities, gateway.Filter{"client_id": id}); err != nil {
		return s.fail(ctx, "delete_client", "delete_failed", err)
	}
	rows, err := s.gw.Delete(ctx, gateway.TableClients, gateway.Filter{"id": id})
	if err != nil {
		if gateway.IsForeignKey(err) {
			s.fail(ctx, "delete_client", "client_has_sales", err)
			return fmt.Errorf("delete_client: %w", ErrHasDependents)
		}
		return s.fail(ctx, "delete_client", "delete_failed", err)
	}
	if len(rows) == 0 {
		return s.fail(ctx, "delete_client", "permission_denied", ErrPermissionDenied)
	}

	s.mu.Lock()
	s.clients = removeByID(s.clients, id, clientID)
	s.mu.Unlock()

	s.ok(ctx, "delete_client", "client_deleted")
	return nil
}
