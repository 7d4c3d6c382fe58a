package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/albergue/internal/booking"
	"github.com/erazemk/albergue/internal/concierge"
	"github.com/erazemk/albergue/internal/model"
	"github.com/erazemk/albergue/internal/report"
	"github.com/erazemk/albergue/internal/store"
)

// BookingsHandler handles booking creation, editing and deletion plus the
// flat and grouped reservation views.
type BookingsHandler struct {
	DB        *sql.DB
	Concierge *concierge.Client
}

type bookingRequest struct {
	GuestName     string              `json:"guestName"`
	GroupName     string              `json:"groupName"`
	DNI           string              `json:"dni"`
	Phone         string              `json:"phone"`
	Observations  string              `json:"observations"`
	CheckIn       string              `json:"checkIn"`
	CheckOut      string              `json:"checkOut"`
	Selection     map[string]int      `json:"selection"`
	OtherServices model.OtherServices `json:"otherServices"`
	UnitServices  model.UnitServices  `json:"unitServices"`
	Dining        model.DiningMap     `json:"dining"`
}

func (req bookingRequest) toBooking() model.Booking {
	return model.Booking{
		GuestName:     req.GuestName,
		GroupName:     req.GroupName,
		DNI:           req.DNI,
		Phone:         req.Phone,
		Observations:  req.Observations,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		OtherServices: req.OtherServices,
		UnitServices:  req.UnitServices,
		Dining:        req.Dining,
	}
}

type bookingResponse struct {
	Reservations []model.Reservation    `json:"reservations"`
	Confirmation concierge.Confirmation `json:"confirmation"`
}

// Create handles POST /api/bookings.
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GuestName == "" {
		jsonError(w, http.StatusBadRequest, "guest name required")
		return
	}

	b := req.toBooking()
	allocated, err := store.CreateBooking(r.Context(), h.DB, b, req.Selection)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if allocated == nil {
		allocated = []model.Reservation{}
	}

	confirmation := h.Concierge.Confirm(r.Context(), b, req.Selection)
	slog.Info("booking created", "guest", req.GuestName, "units", len(allocated))
	jsonResponse(w, http.StatusCreated, bookingResponse{
		Reservations: allocated,
		Confirmation: confirmation,
	})
}

// Update handles PUT /api/bookings/{key}: a wholesale replacement of the
// guest's group.
func (h *BookingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	guestName := r.PathValue("key")
	if guestName == "" {
		jsonError(w, http.StatusBadRequest, "guest name required")
		return
	}

	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GuestName == "" {
		req.GuestName = guestName
	}

	allocated, err := store.ReplaceBooking(r.Context(), h.DB, guestName, req.toBooking(), req.Selection)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if allocated == nil {
		allocated = []model.Reservation{}
	}

	slog.Info("booking replaced", "guest", guestName, "units", len(allocated))
	jsonResponse(w, http.StatusOK, allocated)
}

// Delete handles DELETE /api/bookings/{key}.
func (h *BookingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	guestName := r.PathValue("key")
	if guestName == "" {
		jsonError(w, http.StatusBadRequest, "guest name required")
		return
	}

	if err := store.DeleteGroup(r.Context(), h.DB, guestName); err != nil {
		slog.Error("failed to delete group", "guest", guestName, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete group")
		return
	}

	slog.Info("group deleted", "guest", guestName)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "group deleted"})
}

// ListReservations handles GET /api/reservations.
func (h *BookingsHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := store.ListReservations(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list reservations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list reservations")
		return
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	jsonResponse(w, http.StatusOK, reservations)
}

// ListGroups handles GET /api/reservations/groups: the grouped view with
// estimated total cost per group.
func (h *BookingsHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	reservations, err := store.ListReservations(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list reservations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list reservations")
		return
	}

	groups := report.WithCost(report.Group(reservations))
	if groups == nil {
		groups = []model.GroupedReservationWithCost{}
	}
	jsonResponse(w, http.StatusOK, groups)
}

// writeBookingError maps allocation failures to 409 and validation
// failures to 400.
func writeBookingError(w http.ResponseWriter, err error) {
	var insufficient *booking.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		jsonResponse(w, http.StatusConflict, map[string]any{
			"error":     insufficient.Error(),
			"itemType":  insufficient.ItemType,
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
		return
	}
	jsonError(w, http.StatusBadRequest, err.Error())
}
