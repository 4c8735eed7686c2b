package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/popis/internal/model"
	"github.com/erazemk/popis/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, model.ReportFilter{})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonData(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Item
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Barcode == "" {
		req.Barcode = model.DeriveBarcode(req.HotelCode, req.DepartmentCode, req.AssetName)
	}

	item, err := store.CreateItem(r.Context(), h.DB, req)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	slog.Info("item created", "id", item.ID, "barcode", item.Barcode, "by", requester(r))
	jsonResponse(w, http.StatusCreated, envelope{Data: item, Message: "item created"})
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req model.Item
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if req.Barcode == "" {
		req.Barcode = existing.Barcode
	}

	if _, err := store.UpdateItem(r.Context(), h.DB, id, req); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil || item == nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, envelope{Data: item, Message: "item updated"})
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	ok, err := store.DeleteItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	slog.Info("item deleted", "id", id, "by", requester(r))
	jsonMessage(w, http.StatusOK, "item deleted")
}

// requester is the email of the authenticated caller.
func requester(r *http.Request) string {
	if claims := GetClaims(r.Context()); claims != nil {
		return claims.Email
	}
	return ""
}
