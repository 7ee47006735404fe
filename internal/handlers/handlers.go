// Package handlers exposes the back office over JSON HTTP: one handler
// group per entity, a printable voucher page, the change-feed relay, and
// the auth endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/solviatours/backoffice/internal/auth"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/logger"
	"github.com/solviatours/backoffice/internal/media"
	"github.com/solviatours/backoffice/internal/notify"
	"github.com/solviatours/backoffice/internal/session"
	"github.com/solviatours/backoffice/internal/store"
)

// Handlers bundles the service objects every endpoint needs.
type Handlers struct {
	store    *store.Store
	sessions *session.Store
	auth     *auth.Service
	media    media.Store
	feed     gateway.Feed
	toasts   *notify.Notifier
	confirms *notify.Confirmer
	log      logger.Logger
}

func New(st *store.Store, sessions *session.Store, authSvc *auth.Service, m media.Store, feed gateway.Feed, toasts *notify.Notifier, confirms *notify.Confirmer, log logger.Logger) *Handlers {
	return &Handlers{
		store:    st,
		sessions: sessions,
		auth:     authSvc,
		media:    m,
		feed:     feed,
		toasts:   toasts,
		confirms: confirms,
		log:      log,
	}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uint, error) {
	return pathUint(r, "id")
}

func pathUint(r *http.Request, name string) (uint, error) {
	id64, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id64), nil
}

func decode(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeStoreError maps the store's failure classes onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, store.ErrPermissionDenied):
		httpx.JSONError(w, http.StatusForbidden, "permission_denied", nil)
	case errors.Is(err, store.ErrHasDependents):
		httpx.JSONError(w, http.StatusConflict, "has_dependent_records", nil)
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
