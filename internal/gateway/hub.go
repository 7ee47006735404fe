package gateway

import "sync"

// Subscription is one change-feed listener. Events() closes after Close().
type Subscription struct {
	table  Table
	kinds  map[EventKind]bool
	ch     chan ChangeEvent
	closer func(*Subscription)
	once   sync.Once
}

// Events returns the notification channel.
func (s *Subscription) Events() <-chan ChangeEvent { return s.ch }

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.closer(s) })
}

func (s *Subscription) wants(e ChangeEvent) bool {
	if s.table != e.Table {
		return false
	}
	return len(s.kinds) == 0 || s.kinds[e.Kind]
}

// Hub is an in-process change-feed broadcaster. Implementations publish
// after each committed write; subscribers receive events asynchronously
// and independently, with no ordering guarantee across tables.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a listener for a table. An empty kinds list means all
// event kinds.
func (h *Hub) Subscribe(table Table, kinds ...EventKind) *Subscription {
	ks := make(map[EventKind]bool, len(kinds))
	for _, k := range kinds {
		ks[k] = true
	}
	sub := &Subscription{table: table, kinds: ks, ch: make(chan ChangeEvent, 64), closer: h.remove}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	close(sub.ch)
}

// Publish fans an event out to all matching subscribers. A subscriber that
// has fallen behind its buffer drops the event rather than blocking the
// writer path.
func (h *Hub) Publish(e ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if !sub.wants(e) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}
