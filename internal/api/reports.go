package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/albergue/internal/model"
	"github.com/erazemk/albergue/internal/report"
	"github.com/erazemk/albergue/internal/store"
)

// ReportsHandler serves the derived reporting views.
type ReportsHandler struct {
	DB *sql.DB
}

func (h *ReportsHandler) reservations(w http.ResponseWriter, r *http.Request) ([]model.Reservation, bool) {
	reservations, err := store.ListReservations(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list reservations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list reservations")
		return nil, false
	}
	return reservations, true
}

// dateRange reads the from/to query parameters, defaulting both to today.
func dateRange(r *http.Request) (from, to string, ok bool) {
	from = r.URL.Query().Get("from")
	to = r.URL.Query().Get("to")
	if from == "" {
		from = model.Today()
	}
	if to == "" {
		to = from
	}
	if !model.ValidDate(from) || !model.ValidDate(to) || to < from {
		return "", "", false
	}
	return from, to, true
}

// Dashboard handles GET /api/reports/dashboard.
func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	reservations, ok := h.reservations(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, report.Dashboard(reservations, model.Today()))
}

// Dining handles GET /api/reports/dining?from=&to=.
func (h *ReportsHandler) Dining(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	reservations, ok := h.reservations(w, r)
	if !ok {
		return
	}
	days := report.DiningTotals(reservations, from, to)
	if days == nil {
		days = []report.DiningDay{}
	}
	jsonResponse(w, http.StatusOK, days)
}

// Occupancy handles GET /api/reports/occupancy?from=&to=.
func (h *ReportsHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	reservations, ok := h.reservations(w, r)
	if !ok {
		return
	}
	days := report.Occupancy(reservations, from, to)
	if days == nil {
		days = []report.OccupancyDay{}
	}
	jsonResponse(w, http.StatusOK, days)
}

// Services handles GET /api/reports/services.
func (h *ReportsHandler) Services(w http.ResponseWriter, r *http.Request) {
	reservations, ok := h.reservations(w, r)
	if !ok {
		return
	}
	rows, grandTotal := report.ServiceBookings(reservations)
	if rows == nil {
		rows = []report.ServiceBookingRow{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"rows":       rows,
		"grandTotal": grandTotal,
	})
}

// Invoice handles GET /api/invoices/{key}: the invoice for one group,
// looked up by its grouping key.
func (h *ReportsHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		jsonError(w, http.StatusBadRequest, "group key required")
		return
	}

	reservations, ok := h.reservations(w, r)
	if !ok {
		return
	}

	var group *model.GroupedReservation
	for _, g := range report.Group(reservations) {
		if g.Key() == key {
			group = &g
			break
		}
	}
	if group == nil {
		jsonError(w, http.StatusNotFound, "group not found")
		return
	}

	fiscal, err := store.GetFiscalDetails(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to load fiscal details", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load fiscal details")
		return
	}

	jsonResponse(w, http.StatusOK, report.BuildInvoice(*group, fiscal))
}
