package handlers

import (
	"net/http"

	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/i18n"
	"github.com/solviatours/backoffice/internal/models"
	"github.com/solviatours/backoffice/internal/view"
)

func (h *Handlers) ListSales(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.store.Sales())
}

func (h *Handlers) CreateSale(w http.ResponseWriter, r *http.Request) {
	var s models.Sale
	if err := decode(r, &s); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	rec, err := h.store.AddSale(r.Context(), s)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handlers) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var s models.Sale
	if err := decode(r, &s); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	s.ID = id
	rec, err := h.store.UpdateSale(r.Context(), s)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handlers) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.store.DeleteSale(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (h *Handlers) SaleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	details, err := h.store.GetSaleDetails(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, details)
}

// SaleVoucher renders the printable voucher page.
func (h *Handlers) SaleVoucher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	details, err := h.store.GetSaleDetails(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	lang := i18n.LangFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderVoucher(w, lang, details); err != nil {
		h.log.Error("voucher render failed", "sale_id", id, "error", err)
	}
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.store.Stats())
}
