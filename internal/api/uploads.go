package api

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/popis/internal/store"
)

// maxUploadSize caps an image upload.
const maxUploadSize = 5 << 20

// UploadsHandler stores uploaded images and serves them back.
type UploadsHandler struct {
	DB *sql.DB
	// PublicURL is the externally visible base URL. Empty derives it from
	// the request.
	PublicURL string
}

// Upload handles POST /api/upload.
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	// Sniff actual MIME type from bytes (not trusting client headers).
	mime := http.DetectContentType(data)
	if mime != "image/jpeg" && mime != "image/png" {
		jsonError(w, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	}

	id, err := store.CreateUpload(r.Context(), h.DB, header.Filename, mime, data)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	url := fmt.Sprintf("%s/api/uploads/%d", h.baseURL(r), id)
	jsonResponse(w, http.StatusCreated, envelope{Data: map[string]string{"url": url}, Message: "image uploaded"})
}

// Get handles GET /api/uploads/{id}.
func (h *UploadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid upload id")
		return
	}

	u, err := store.GetUpload(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if u == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", u.MIME)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(u.Data)
}

func (h *UploadsHandler) baseURL(r *http.Request) string {
	if h.PublicURL != "" {
		return strings.TrimRight(h.PublicURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
