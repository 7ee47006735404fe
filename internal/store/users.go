package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/models"
)

// AddUser provisions a back-office account through the privileged admin
// API: credentials plus the profile row, in one call.
func (s *Store) AddUser(ctx context.Context, email, password, firstName, lastName string, role access.Role) (*models.Profile, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, s.failValidation(ctx, "add_user", "required")
	}
	if !access.Valid(role) {
		role = access.RoleAsesor
	}
	profile, err := s.admin.CreateUser(ctx, email, password, firstName, lastName, role)
	if err != nil {
		return nil, s.fail(ctx, "add_user", "save_failed", err)
	}

	s.mu.Lock()
	s.profiles = insertFront(s.profiles, *profile, profile.ID, profileID)
	s.mu.Unlock()

	s.ok(ctx, "add_user", "user_created")
	return profile, nil
}

// UpdateUser rewrites a profile's name, role, and active flag.
func (s *Store) UpdateUser(ctx context.Context, p models.Profile) (*models.Profile, error) {
	if strings.TrimSpace(p.FirstName) == "" {
		return nil, s.failValidation(ctx, "update_user", "validation_name")
	}
	if !access.Valid(p.Role) {
		p.Role = access.RoleAsesor
	}
	rows, err := s.gw.Update(ctx, gateway.TableProfiles, profileRow(p), gateway.Filter{"id": p.ID})
	if err != nil {
		return nil, s.fail(ctx, "update_user", "save_failed", err)
	}
	if len(rows) == 0 {
		return nil, s.fail(ctx, "update_user", "permission_denied", ErrPermissionDenied)
	}
	rec := normalizeProfile(rows[0])

	s.mu.Lock()
	s.profiles = replaceByID(s.profiles, rec, rec.ID, profileID)
	s.mu.Unlock()

	s.ok(ctx, "update_user", "user_updated")
	return &rec, nil
}

// DeleteUser removes an account's profile. A user with assigned sales is
// protected by the backend's foreign key.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	rows, err := s.gw.Delete(ctx, gateway.TableProfiles, gateway.Filter{"id": id})
	if err != nil {
		if gateway.IsForeignKey(err) {
			s.fail(ctx, "delete_user", "user_has_sales", err)
			return fmt.Errorf("delete_user: %w", ErrHasDependents)
		}
		return s.fail(ctx, "delete_user", "delete_failed", err)
	}
	if len(rows) == 0 {
		return s.fail(ctx, "delete_user", "permission_denied", ErrPermissionDenied)
	}

	s.mu.Lock()
	s.profiles = removeByID(s.profiles, id, profileID)
	s.mu.Unlock()

	s.ok(ctx, "delete_user", "user_deleted")
	return nil
}
