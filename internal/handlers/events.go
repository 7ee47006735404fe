package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/notify"
)

var feedTables = []gateway.Table{
	gateway.TableDestinations,
	gateway.TableExcursions,
	gateway.TableClients,
	gateway.TableSales,
	gateway.TableProfiles,
}

// Events relays the backend change feed to the browser as server-sent
// events, one JSON payload per row change. Clients use it to keep their
// views current without polling.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	subs := make([]*gateway.Subscription, 0, len(feedTables))
	merged := make(chan gateway.ChangeEvent, 64)
	done := r.Context().Done()
	for _, t := range feedTables {
		sub := h.feed.Subscribe(t)
		subs = append(subs, sub)
		go func(sub *gateway.Subscription) {
			for e := range sub.Events() {
				select {
				case merged <- e:
				case <-done:
					return
				}
			}
		}(sub)
	}
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()

	for {
		select {
		case <-done:
			return
		case e := <-merged:
			payload, err := json.Marshal(map[string]any{
				"table": e.Table,
				"kind":  e.Kind,
				"row":   e.Row,
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// CurrentNotification returns the visible toast, if any.
func (h *Handlers) CurrentNotification(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.toasts.Current())
}

func (h *Handlers) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.toasts.Dismiss()
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// PendingConfirmation returns the outstanding yes/no question, if any.
func (h *Handlers) PendingConfirmation(w http.ResponseWriter, r *http.Request) {
	id, opts, ok := h.confirms.Pending()
	if !ok {
		httpx.JSON(w, http.StatusOK, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "options": opts})
}

type confirmAnswer struct {
	Answer bool `json:"answer"`
}

// ResolveConfirmation answers a pending confirmation by id.
func (h *Handlers) ResolveConfirmation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body confirmAnswer
	if err := decode(r, &body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := h.confirms.Resolve(id, body.Answer); err != nil {
		if errors.Is(err, notify.ErrUnknownRequest) {
			httpx.JSONError(w, http.StatusNotFound, "unknown_confirmation", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}
