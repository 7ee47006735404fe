// Package gateway defines the contract to the relational backend: row-level
// reads and writes per table, typed failure classes, and a push-based
// change feed with per-table subscriptions. The domain and session stores
// depend only on this package; gormstore provides the real implementation.
package gateway

import (
	"context"
	"errors"
)

// Table names the backend tables the back office reads and writes.
type Table string

const (
	TableDestinations      Table = "destinations"
	TableDestinationImages Table = "destination_images"
	TableExcursions        Table = "excursions"
	TableClients           Table = "clients"
	TableClientIdentities  Table = "client_identities"
	TableSales             Table = "sales"
	TableProfiles          Table = "profiles"
	TableAuthUsers         Table = "auth_users"
)

// Row is one backend row in wire shape (snake_case keys).
type Row = map[string]any

// Filter selects rows by exact column match. A nil value matches NULL.
type Filter map[string]any

// EventKind classifies a change feed notification.
type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventUpdate EventKind = "UPDATE"
	EventDelete EventKind = "DELETE"
)

// ChangeEvent is one row-level change pushed by the backend.
type ChangeEvent struct {
	Table Table
	Kind  EventKind
	Row   Row
}

// Typed failure classes. Callers distinguish these with errors.Is.
var (
	// ErrForeignKey marks a write rejected by a referential-integrity
	// constraint (e.g. deleting a destination with dependent sales).
	ErrForeignKey = errors.New("foreign key constraint violation")
)

// IsForeignKey reports whether err is a referential-integrity rejection.
func IsForeignKey(err error) bool { return errors.Is(err, ErrForeignKey) }

// Client is the table read/write surface. Writes return the affected rows;
// an update or delete matching zero rows returns an empty slice, not an
// error; callers treat that as a permission-style failure.
type Client interface {
	Select(ctx context.Context, table Table, filter Filter, orderBy string) ([]Row, error)
	Insert(ctx context.Context, table Table, rows []Row) ([]Row, error)
	Update(ctx context.Context, table Table, patch Row, filter Filter) ([]Row, error)
	Delete(ctx context.Context, table Table, filter Filter) ([]Row, error)
}

// Feed delivers change notifications. Subscriptions are independent per
// table and must be closed by the subscriber.
type Feed interface {
	Subscribe(table Table, kinds ...EventKind) *Subscription
}
