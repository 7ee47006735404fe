package handlers

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/solviatours/backoffice/internal/httpx"
	"github.com/solviatours/backoffice/internal/models"
)

const maxUploadBytes = 10 << 20

func (h *Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.store.Destinations())
}

func (h *Handlers) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var d models.Destination
	if err := decode(r, &d); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	rec, err := h.store.AddDestination(r.Context(), d)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handlers) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var d models.Destination
	if err := decode(r, &d); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	d.ID = id
	rec, err := h.store.UpdateDestination(r.Context(), d)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handlers) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.store.DeleteDestination(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// UploadDestinationImages accepts a multipart form of image files, pushes
// each to object storage, and registers the resulting URLs as gallery
// rows in upload order.
func (h *Handlers) UploadDestinationImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", err.Error())
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "no_files", nil)
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "unreadable_file", fh.Filename)
			return
		}
		key := fmt.Sprintf("destinations/%d/%d-%s%s", id, time.Now().UnixMilli(), uuid.NewString()[:8], path.Ext(fh.Filename))
		ct := fh.Header.Get("Content-Type")
		err = h.media.Upload(r.Context(), key, ct, f)
		f.Close()
		if err != nil {
			h.log.Error("image upload failed", "key", key, "error", err)
			httpx.JSONError(w, http.StatusBadGateway, "upload_failed", nil)
			return
		}
		urls = append(urls, h.media.PublicURL(key))
	}

	images, err := h.store.AddDestinationImages(r.Context(), id, urls)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, images)
}

func (h *Handlers) DeleteDestinationImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	imgID64, err := pathUint(r, "image_id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.store.DeleteDestinationImage(r.Context(), id, imgID64); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": imgID64})
}
