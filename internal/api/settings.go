package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/albergue/internal/imaging"
	"github.com/erazemk/albergue/internal/model"
	"github.com/erazemk/albergue/internal/store"
)

// SettingsHandler handles the fiscal details and invoice logo endpoints.
type SettingsHandler struct {
	DB *sql.DB
}

// GetFiscal handles GET /api/settings/fiscal.
func (h *SettingsHandler) GetFiscal(w http.ResponseWriter, r *http.Request) {
	details, err := store.GetFiscalDetails(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to load fiscal details", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load fiscal details")
		return
	}
	jsonResponse(w, http.StatusOK, details)
}

// SetFiscal handles PUT /api/settings/fiscal.
func (h *SettingsHandler) SetFiscal(w http.ResponseWriter, r *http.Request) {
	var details model.FiscalDetails
	if err := decodeJSON(r, &details); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if details.CompanyName == "" {
		jsonError(w, http.StatusBadRequest, "company name required")
		return
	}

	if err := store.SetFiscalDetails(r.Context(), h.DB, details); err != nil {
		slog.Error("failed to store fiscal details", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to store fiscal details")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("fiscal details updated", "user", claims.Username)
	jsonResponse(w, http.StatusOK, details)
}

// UploadLogo handles PUT /api/settings/fiscal/logo. The image is validated
// by sniffing, downscaled and re-encoded before storage.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "logo file required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetLogo(r.Context(), h.DB, processed.Data, processed.MIME); err != nil {
		slog.Error("failed to store logo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to store logo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "logo uploaded"})
}

// GetLogo handles GET /api/settings/fiscal/logo.
func (h *SettingsHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetLogo(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to load logo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load logo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no logo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
