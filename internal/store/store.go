// Package store is the single source of truth for the domain collections
// in a running session. It loads every collection at startup, normalizes
// backend rows into UI-facing records, keeps the collections in sync with
// the change feed, and mediates every create/update/delete against the
// gateway. All consistency is achieved by structuring each operation as
// "remote call, then single atomic local collection replacement".
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sync"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/i18n"
	"github.com/solviatours/backoffice/internal/logger"
	"github.com/solviatours/backoffice/internal/metrics"
	"github.com/solviatours/backoffice/internal/models"
	"github.com/solviatours/backoffice/internal/notify"
)

// Failure classes surfaced by store operations (§ error taxonomy). The
// user-facing message has already been pushed through the notifier by the
// time one of these is returned.
var (
	// ErrValidation marks input rejected before any remote call.
	ErrValidation = errors.New("validation failed")
	// ErrPermissionDenied marks a write that matched zero rows: the
	// backend silently filtered it, so the caller lacks rights.
	ErrPermissionDenied = errors.New("write affected no rows")
	// ErrHasDependents marks a delete rejected by referential integrity.
	ErrHasDependents = errors.New("record has dependent rows")
	// ErrNotFound marks a missing record on a local read.
	ErrNotFound = errors.New("record not found")
)

// AdminAPI is the privileged user-provisioning function. Creating an
// identity requires elevated rights the UI session does not hold, so it is
// injected rather than built from the plain gateway client.
type AdminAPI interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string, role access.Role) (*models.Profile, error)
}

// Store owns the in-memory domain collections.
type Store struct {
	gw      gateway.Client
	feed    gateway.Feed
	admin   AdminAPI
	log     logger.Logger
	metrics *metrics.Metrics
	toasts  *notify.Notifier

	mu           sync.RWMutex
	destinations []models.Destination
	sales        []models.Sale
	clients      []models.Client
	excursions   []models.Excursion
	profiles     []models.Profile
	loading      bool

	subs []*gateway.Subscription
	wg   sync.WaitGroup

	now func() time.Time // injectable for voucher-code tests
}

// New constructs a domain store. Call Load, then Start, and Close on
// teardown.
func New(gw gateway.Client, feed gateway.Feed, admin AdminAPI, log logger.Logger, m *metrics.Metrics, toasts *notify.Notifier) *Store {
	return &Store{
		gw:      gw,
		feed:    feed,
		admin:   admin,
		log:     log,
		metrics: m,
		toasts:  toasts,
		now:     time.Now,
	}
}

// Loading reports whether the initial batch load is still in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot accessors return copies so callers can never mutate the
// collections behind the store's back.

func (s *Store) Destinations() []models.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Destination{}, s.destinations...)
}

func (s *Store) Sales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Sale{}, s.sales...)
}

func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Client{}, s.clients...)
}

func (s *Store) Excursions() []models.Excursion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Excursion{}, s.excursions...)
}

func (s *Store) Users() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Profile{}, s.profiles...)
}

// destinationTitle resolves a live destination's title, "" when unknown.
func (s *Store) destinationTitle(id uint) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.destinations {
		if d.ID == id {
			return d.Title
		}
	}
	return ""
}

// ok records a successful operation and pushes the localized toast.
func (s *Store) ok(ctx context.Context, op, code string) {
	s.metrics.StoreOps.WithLabelValues(op).Inc()
	s.toasts.Success(i18n.T(i18n.LangFromContext(ctx), code))
}

// fail records a failed operation, pushes the localized error toast, and
// wraps the cause so callers can classify it with errors.Is.
func (s *Store) fail(ctx context.Context, op, code string, cause error) error {
	s.metrics.StoreErrors.WithLabelValues(op).Inc()
	s.log.Error("store operation failed", "operation", op, "error", cause)
	s.toasts.Error(i18n.T(i18n.LangFromContext(ctx), code))
	return fmt.Errorf("%s: %w", op, cause)
}

// failValidation rejects input before any remote call.
func (s *Store) failValidation(ctx context.Context, op, code string) error {
	s.metrics.StoreErrors.WithLabelValues(op).Inc()
	s.toasts.Error(i18n.T(i18n.LangFromContext(ctx), code))
	return fmt.Errorf("%s: %w", op, ErrValidation)
}
