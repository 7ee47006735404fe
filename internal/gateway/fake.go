package gateway

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory gateway for tests: tables of rows with auto-assigned
// ids, programmable per-table failures, and manual event injection so tests
// can replay change-feed races without a live backend.
type Fake struct {
	mu     sync.Mutex
	tables map[Table][]Row
	nextID map[Table]uint
	errs   map[string]error // "op:table" -> forced error
	hub    *Hub

	// Echo makes writes publish their own change events, imitating the
	// backend echoing a local mutation back through the feed.
	Echo bool
}

// NewFake creates an empty fake gateway.
func NewFake() *Fake {
	return &Fake{
		tables: make(map[Table][]Row),
		nextID: make(map[Table]uint),
		errs:   make(map[string]error),
		hub:    NewHub(),
	}
}

// Seed replaces the contents of a table.
func (f *Fake) Seed(table Table, rows ...Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append([]Row{}, rows...)
	var max uint
	for _, r := range rows {
		if id := Uint(r, "id"); id > max {
			max = id
		}
	}
	f.nextID[table] = max + 1
}

// FailNext forces the next matching operation ("select", "insert",
// "update", "delete") on table to return err.
func (f *Fake) FailNext(op string, table Table, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op+":"+string(table)] = err
}

// Emit injects a change event, as if pushed by the backend.
func (f *Fake) Emit(e ChangeEvent) { f.hub.Publish(e) }

// Subscribe implements Feed.
func (f *Fake) Subscribe(table Table, kinds ...EventKind) *Subscription {
	return f.hub.Subscribe(table, kinds...)
}

// Rows returns a copy of a table's current contents.
func (f *Fake) Rows(table Table) []Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Row{}, f.tables[table]...)
}

func (f *Fake) takeErr(op string, table Table) error {
	key := op + ":" + string(table)
	if err, ok := f.errs[key]; ok {
		delete(f.errs, key)
		return err
	}
	return nil
}

func matches(r Row, filter Filter) bool {
	for k, want := range filter {
		got, ok := r[k]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// Select implements Client.
func (f *Fake) Select(_ context.Context, table Table, filter Filter, _ string) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("select", table); err != nil {
		return nil, err
	}
	var out []Row
	for _, r := range f.tables[table] {
		if matches(r, filter) {
			out = append(out, cloneRow(r))
		}
	}
	return out, nil
}

// Insert implements Client. Rows without an id get the next sequence value.
func (f *Fake) Insert(_ context.Context, table Table, rows []Row) ([]Row, error) {
	f.mu.Lock()
	if err := f.takeErr("insert", table); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	var out []Row
	for _, r := range rows {
		stored := cloneRow(r)
		if Uint(stored, "id") == 0 {
			if f.nextID[table] == 0 {
				f.nextID[table] = 1
			}
			stored["id"] = f.nextID[table]
			f.nextID[table]++
		}
		f.tables[table] = append(f.tables[table], stored)
		out = append(out, cloneRow(stored))
	}
	f.mu.Unlock()
	if f.Echo {
		for _, r := range out {
			f.hub.Publish(ChangeEvent{Table: table, Kind: EventInsert, Row: cloneRow(r)})
		}
	}
	return out, nil
}

// Update implements Client.
func (f *Fake) Update(_ context.Context, table Table, patch Row, filter Filter) ([]Row, error) {
	f.mu.Lock()
	if err := f.takeErr("update", table); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	var out []Row
	for i, r := range f.tables[table] {
		if !matches(r, filter) {
			continue
		}
		for k, v := range patch {
			r[k] = v
		}
		f.tables[table][i] = r
		out = append(out, cloneRow(r))
	}
	f.mu.Unlock()
	if f.Echo {
		for _, r := range out {
			f.hub.Publish(ChangeEvent{Table: table, Kind: EventUpdate, Row: cloneRow(r)})
		}
	}
	return out, nil
}

// Delete implements Client.
func (f *Fake) Delete(_ context.Context, table Table, filter Filter) ([]Row, error) {
	f.mu.Lock()
	if err := f.takeErr("delete", table); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	var kept []Row
	var out []Row
	for _, r := range f.tables[table] {
		if matches(r, filter) {
			out = append(out, cloneRow(r))
			continue
		}
		kept = append(kept, r)
	}
	f.tables[table] = kept
	f.mu.Unlock()
	if f.Echo {
		for _, r := range out {
			f.hub.Publish(ChangeEvent{Table: table, Kind: EventDelete, Row: cloneRow(r)})
		}
	}
	return out, nil
}

func cloneRow(r Row) Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
