package api

import (
	"net/http"

	"github.com/erazemk/albergue/internal/catalog"
)

// CatalogHandler serves the static bookable catalog.
type CatalogHandler struct{}

// Rooms handles GET /api/catalog/rooms.
func (h *CatalogHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, catalog.RoomTypes)
}

// Services handles GET /api/catalog/services.
func (h *CatalogHandler) Services(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, catalog.ServiceTypes)
}

// Units handles GET /api/catalog/units. An optional ?type= filter narrows
// the list to one item type.
func (h *CatalogHandler) Units(w http.ResponseWriter, r *http.Request) {
	if typeID := r.URL.Query().Get("type"); typeID != "" {
		if _, ok := catalog.Lookup(typeID); !ok {
			jsonError(w, http.StatusNotFound, "unknown item type")
			return
		}
		jsonResponse(w, http.StatusOK, catalog.UnitsOf(typeID))
		return
	}
	jsonResponse(w, http.StatusOK, catalog.Units())
}

// Dining handles GET /api/catalog/dining.
func (h *CatalogHandler) Dining(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, catalog.MealOptions)
}
