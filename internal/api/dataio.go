package api

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/erazemk/albergue/internal/store"
)

// DataHandler handles the legacy-format export and import endpoints.
type DataHandler struct {
	DB *sql.DB
}

// Export handles GET /api/export: every reservation as an indented JSON
// array in the legacy field naming.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := store.ExportReservations(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to export reservations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to export reservations")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="reservas.json"`)
	w.Write(data)
}

// Import handles POST /api/import: a wholesale replacement of all booking
// data. A payload that is not a JSON array is rejected before anything is
// touched.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	// Limit to 20 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read import data")
		return
	}
	defer r.Body.Close()

	count, err := store.ImportReservations(r.Context(), h.DB, data)
	if err != nil {
		if errors.Is(err, store.ErrImportFormat) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to import reservations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to import reservations")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("reservations imported", "user", claims.Username, "count", count)
	jsonResponse(w, http.StatusOK, map[string]any{"imported": count})
}
