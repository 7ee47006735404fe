package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ConfirmOptions describes a yes/no question put to the user.
type ConfirmOptions struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	ConfirmLabel string `json:"confirmLabel"` // defaults to "Confirmar"
	Destructive  bool   `json:"destructive"`  // alert vs destructive icon
}

// Confirmer errors.
var (
	// ErrReplaced is returned to a caller whose pending confirmation was
	// displaced by a newer request. At most one request is shown at a
	// time; a second concurrent call replaces, not queues, the first.
	// Known limitation, acceptable for a single-operator admin UI.
	ErrReplaced = errors.New("confirmation replaced by a newer request")
	// ErrUnknownRequest is returned by Resolve for a stale or bogus id.
	ErrUnknownRequest = errors.New("no pending confirmation with that id")
)

type pendingConfirm struct {
	id   string
	opts ConfirmOptions
	ch   chan bool
}

// Confirmer is the request/response channel behind the confirmation modal:
// the core requests a confirmation and suspends; the UI layer shows the
// pending question and resolves it exactly once.
type Confirmer struct {
	mu      sync.Mutex
	pending *pendingConfirm
}

// NewConfirmer creates an idle confirmer.
func NewConfirmer() *Confirmer { return &Confirmer{} }

// Request blocks until the user answers, the context is canceled, or a
// newer request replaces this one.
func (c *Confirmer) Request(ctx context.Context, opts ConfirmOptions) (bool, error) {
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = "Confirmar"
	}
	req := &pendingConfirm{id: uuid.NewString(), opts: opts, ch: make(chan bool, 1)}

	c.mu.Lock()
	if prev := c.pending; prev != nil {
		// displace the earlier caller
		close(prev.ch)
	}
	c.pending = req
	c.mu.Unlock()

	select {
	case answer, ok := <-req.ch:
		if !ok {
			return false, ErrReplaced
		}
		return answer, nil
	case <-ctx.Done():
		c.mu.Lock()
		if c.pending == req {
			c.pending = nil
		}
		c.mu.Unlock()
		return false, ctx.Err()
	}
}

// Pending returns the currently displayed request, if any.
func (c *Confirmer) Pending() (id string, opts ConfirmOptions, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return "", ConfirmOptions{}, false
	}
	return c.pending.id, c.pending.opts, true
}

// Resolve answers the pending request. Resolving clears it, so a stale id
// (already replaced or answered) returns ErrUnknownRequest.
func (c *Confirmer) Resolve(id string, answer bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil || c.pending.id != id {
		return ErrUnknownRequest
	}
	c.pending.ch <- answer
	c.pending = nil
	return nil
}
