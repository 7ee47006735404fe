package handlers

import (
	"net/http"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/models"
)

type createUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.store.Users())
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	rec, err := h.store.AddUser(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, access.Role(req.Role))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var p models.Profile
	if err := decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	p.ID = id
	rec, err := h.store.UpdateUser(r.Context(), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.sessions.Invalidate(id)
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	h.sessions.Invalidate(id)
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
