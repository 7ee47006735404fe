// Package session owns the authenticated identity and answers permission
// queries against the static role matrix. It tracks the current operator
// (the admin UI is single-operator) and additionally resolves arbitrary
// user ids with a small TTL cache for per-request authorization.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/logger"
	"github.com/solviatours/backoffice/internal/models"
)

type cacheEntry struct {
	user      *models.SessionUser
	expiresAt time.Time
}

// Store is the session/access store.
type Store struct {
	gw  gateway.Client
	log logger.Logger

	mu      sync.RWMutex
	user    *models.SessionUser
	loading bool
	cache   map[uint]*cacheEntry
	ttl     time.Duration
}

// New creates a session store. Loading starts true and clears after the
// first auth-state determination, so consumers do not redirect while the
// profile fetch is still in flight.
func New(gw gateway.Client, log logger.Logger) *Store {
	return &Store{
		gw:      gw,
		log:     log,
		loading: true,
		cache:   make(map[uint]*cacheEntry),
		ttl:     time.Minute,
	}
}

// HandleAuthChange reacts to a login (userID > 0) or logout (userID == 0):
// it re-resolves the profile and swaps the session-facing user. Register
// it with auth.Service.OnStateChange.
func (s *Store) HandleAuthChange(ctx context.Context, userID uint) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var user *models.SessionUser
	if userID != 0 {
		resolved, err := s.fetch(ctx, userID)
		if err != nil {
			s.log.Error("profile lookup failed", "userId", userID, "error", err)
		} else {
			user = resolved
		}
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
}

// fetch loads and merges the profile row for an authenticated identity.
func (s *Store) fetch(ctx context.Context, userID uint) (*models.SessionUser, error) {
	rows, err := s.gw.Select(ctx, gateway.TableProfiles, gateway.Filter{"id": userID}, "")
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no profile for user %d", userID)
	}
	r := rows[0]
	role := access.Role(gateway.Str(r, "role"))
	name := models.Profile{FirstName: gateway.Str(r, "first_name"), LastName: gateway.Str(r, "last_name")}.FullName()
	return &models.SessionUser{
		ID:          gateway.Uint(r, "id"),
		Email:       gateway.Str(r, "email"),
		DisplayName: name,
		Role:        role,
		RoleLabel:   access.Label(role),
		Active:      gateway.Bool(r, "active"),
	}, nil
}

// Current returns the session-facing user, or nil when unauthenticated.
func (s *Store) Current() *models.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether an auth-state determination is still in flight.
// Consumers must not redirect while true.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Can answers a permission query for the current user. No user means no
// permissions; an unknown role falls back to the least-privileged set.
func (s *Store) Can(p access.Permission) bool {
	s.mu.RLock()
	u := s.user
	s.mu.RUnlock()
	if u == nil {
		return false
	}
	return access.Can(u.Role, p)
}

// Logout clears the local user record. Invalidate the remote session via
// auth.Service; navigation is the presentation layer's concern.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// Resolve returns the session user for an arbitrary id, with TTL caching
// so per-request authorization does not hit the database every time.
func (s *Store) Resolve(ctx context.Context, userID uint) (*models.SessionUser, error) {
	s.mu.RLock()
	entry, ok := s.cache[userID]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.user, nil
	}

	user, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[userID] = &cacheEntry{user: user, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return user, nil
}

// Invalidate drops a user from the resolver cache. Called when a profile
// row changes so role edits take effect without waiting for expiry.
func (s *Store) Invalidate(userID uint) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}
