// Package notify provides the ephemeral user-feedback primitives: a
// single-slot toast notifier and an awaitable yes/no confirmation gate.
package notify

import (
	"sync"
	"time"
)

// Severity classifies a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Toast is one visible notification.
type Toast struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// DefaultTTL is how long a toast stays visible without manual dismissal.
const DefaultTTL = 3 * time.Second

// Notifier holds at most one visible toast. A new notification replaces
// the current one rather than queueing behind it, and auto-dismisses after
// the TTL.
type Notifier struct {
	mu       sync.Mutex
	current  *Toast
	timer    *time.Timer
	gen      uint64
	ttl      time.Duration
	onChange []func(*Toast)
}

// NewNotifier creates a notifier with the default auto-dismiss TTL.
func NewNotifier() *Notifier { return NewNotifierTTL(DefaultTTL) }

// NewNotifierTTL creates a notifier with a custom TTL (shortened in tests).
func NewNotifierTTL(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl}
}

// OnChange registers a callback invoked with the new current toast (nil on
// dismiss). Callbacks run with the notifier unlocked.
func (n *Notifier) OnChange(fn func(*Toast)) {
	n.mu.Lock()
	n.onChange = append(n.onChange, fn)
	n.mu.Unlock()
}

func (n *Notifier) Success(msg string) { n.show(Toast{Message: msg, Severity: SeveritySuccess}) }
func (n *Notifier) Error(msg string)   { n.show(Toast{Message: msg, Severity: SeverityError}) }
func (n *Notifier) Info(msg string)    { n.show(Toast{Message: msg, Severity: SeverityInfo}) }

func (n *Notifier) show(t Toast) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = &t
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
	cbs := append([]func(*Toast){}, n.onChange...)
	n.mu.Unlock()
	for _, fn := range cbs {
		fn(&t)
	}
}

// expire auto-dismisses the toast the timer was armed for. A timer that
// fires while show is replacing the toast must not clear the newer one,
// so the generation is checked under the lock.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	cbs := n.clearLocked()
	n.mu.Unlock()
	for _, fn := range cbs {
		fn(nil)
	}
}

// Dismiss clears the current toast.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	cbs := n.clearLocked()
	n.mu.Unlock()
	for _, fn := range cbs {
		fn(nil)
	}
}

// clearLocked drops the toast and invalidates any armed timer. Caller
// holds the lock.
func (n *Notifier) clearLocked() []func(*Toast) {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = nil
	return append([]func(*Toast){}, n.onChange...)
}

// Current returns the visible toast, or nil.
func (n *Notifier) Current() *Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	t := *n.current
	return &t
}
