package handlers

import (
	"net/http"

	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/models"
)

func (h *Handlers) ListExcursions(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.store.Excursions())
}

func (h *Handlers) CreateExcursion(w http.ResponseWriter, r *http.Request) {
	var e models.Excursion
	if err := decode(r, &e); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	rec, err := h.store.AddExcursion(r.Context(), e)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handlers) UpdateExcursion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var e models.Excursion
	if err := decode(r, &e); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	e.ID = id
	rec, err := h.store.UpdateExcursion(r.Context(), e)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handlers) DeleteExcursion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.store.DeleteExcursion(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
