package api

import (
	"database/sql"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/popis/internal/model"
	"github.com/erazemk/popis/internal/store"
)

// ReportsHandler serves the filtered report and its CSV export.
type ReportsHandler struct {
	DB      *sql.DB
	Metrics *Metrics
}

type exportRequest struct {
	IDs []int64 `json:"ids"`
}

// csvHeader is the first row of every export.
var csvHeader = []string{
	"ID", "Hotel Code", "Department Code", "Asset Name", "Asset Type", "Category",
	"Status", "Brand / Model", "Serial Number", "Barcode", "Image",
}

// Report handles GET /api/items/report.
func (h *ReportsHandler) Report(w http.ResponseWriter, r *http.Request) {
	filter := model.FilterFromQuery(r.URL.Query())
	if filter.Empty() {
		jsonError(w, http.StatusBadRequest, "at least one filter required")
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonData(w, http.StatusOK, items)
}

// Export handles POST /api/items/export-report.
func (h *ReportsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		jsonError(w, http.StatusBadRequest, "ids required")
		return
	}

	items, err := store.ItemsByID(r.Context(), h.DB, req.IDs)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load items")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write(csvHeader)
	for _, it := range items {
		cw.Write([]string{
			strconv.FormatInt(it.ID, 10), it.HotelCode, it.DepartmentCode, it.AssetName,
			string(it.AssetType), it.Category, string(it.Status), it.BrandModel,
			it.SerialNumber, it.Barcode, it.Image,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("writing export", "error", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.exportRows.Add(float64(len(items)))
	}
}
