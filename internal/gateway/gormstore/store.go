// Package gormstore implements the gateway contract on a relational
// database through gorm (postgres in production, sqlite in development and
// tests). Each committed write is published to an in-process change-feed
// hub, so subscribers see the same insert/update/delete notifications a
// hosted backend would push.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/solviatours/backoffice/internal/gateway"
)

// Store implements gateway.Client and gateway.Feed.
type Store struct {
	db  *gorm.DB
	hub *gateway.Hub
}

// New wraps an open gorm database.
func New(db *gorm.DB) *Store {
	return &Store{db: db, hub: gateway.NewHub()}
}

// Subscribe implements gateway.Feed.
func (s *Store) Subscribe(table gateway.Table, kinds ...gateway.EventKind) *gateway.Subscription {
	return s.hub.Subscribe(table, kinds...)
}

// Select implements gateway.Client.
func (s *Store) Select(ctx context.Context, table gateway.Table, filter gateway.Filter, orderBy string) ([]gateway.Row, error) {
	slice, err := newSlice(table)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx)
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	if err := q.Find(slice).Error; err != nil {
		return nil, mapErr(err)
	}
	return sliceToRows(slice)
}

// Insert implements gateway.Client.
func (s *Store) Insert(ctx context.Context, table gateway.Table, rows []gateway.Row) ([]gateway.Row, error) {
	var out []gateway.Row
	for _, r := range rows {
		entity, err := newEntity(table)
		if err != nil {
			return nil, err
		}
		if err := rowInto(r, entity); err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
			return nil, mapErr(err)
		}
		row, err := toRow(entity)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	for _, r := range out {
		s.hub.Publish(gateway.ChangeEvent{Table: table, Kind: gateway.EventInsert, Row: r})
	}
	return out, nil
}

// Update implements gateway.Client. Zero matching rows yields an empty
// result, not an error.
func (s *Store) Update(ctx context.Context, table gateway.Table, patch gateway.Row, filter gateway.Filter) ([]gateway.Row, error) {
	before, err := s.Select(ctx, table, filter, "")
	if err != nil {
		return nil, err
	}
	if len(before) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(before))
	for _, r := range before {
		ids = append(ids, gateway.Uint(r, "id"))
	}
	entity, err := newEntity(table)
	if err != nil {
		return nil, err
	}
	values, err := sqlPatch(patch)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(entity).Where("id IN ?", ids).Updates(values)
	if res.Error != nil {
		return nil, mapErr(res.Error)
	}
	after, err := s.Select(ctx, table, gateway.Filter{"id": ids}, "")
	if err != nil {
		return nil, err
	}
	for _, r := range after {
		s.hub.Publish(gateway.ChangeEvent{Table: table, Kind: gateway.EventUpdate, Row: r})
	}
	return after, nil
}

// Delete implements gateway.Client. The rows are read before deletion so
// the caller (and the change feed) see what was removed.
func (s *Store) Delete(ctx context.Context, table gateway.Table, filter gateway.Filter) ([]gateway.Row, error) {
	victims, err := s.Select(ctx, table, filter, "")
	if err != nil {
		return nil, err
	}
	if len(victims) == 0 {
		return nil, nil
	}
	entity, err := newEntity(table)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(victims))
	for _, r := range victims {
		ids = append(ids, gateway.Uint(r, "id"))
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(entity).Error; err != nil {
		return nil, mapErr(err)
	}
	for _, r := range victims {
		s.hub.Publish(gateway.ChangeEvent{Table: table, Kind: gateway.EventDelete, Row: r})
	}
	return victims, nil
}

// sqlPatch prepares a patch map for gorm's Updates. Composite values
// (slices, maps, structs) target the JSON columns and must arrive
// serialized; handed over raw, gorm expands them into SQL lists.
func sqlPatch(patch gateway.Row) (map[string]any, error) {
	out := make(map[string]any, len(patch))
	for col, v := range patch {
		if v == nil {
			out[col] = nil
			continue
		}
		if b, ok := v.([]byte); ok {
			out[col] = datatypes.JSON(b)
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				out[col] = nil
				continue
			}
			rv = rv.Elem()
		}
		switch rv.Kind() {
		case reflect.Slice, reflect.Map, reflect.Struct:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("serialize column %s: %w", col, err)
			}
			out[col] = datatypes.JSON(b)
		default:
			out[col] = v
		}
	}
	return out, nil
}

// mapErr classifies backend failures into the gateway's typed errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return fmt.Errorf("%w: %s", gateway.ErrForeignKey, pgErr.Message)
	}
	// sqlite surfaces constraint violations as plain strings
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %v", gateway.ErrForeignKey, err)
	}
	return err
}

// toRow converts a schema struct to its wire row via its json tags.
func toRow(entity any) (gateway.Row, error) {
	b, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var row gateway.Row
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// rowInto fills a schema struct from a wire row.
func rowInto(row gateway.Row, entity any) error {
	b, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, entity)
}

func sliceToRows(slice any) ([]gateway.Row, error) {
	rv := reflect.ValueOf(slice).Elem()
	out := make([]gateway.Row, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		row, err := toRow(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
