package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/erazemk/albergue/internal/model"
	"github.com/erazemk/albergue/internal/store"
)

// RegistrationsHandler handles the individual guest-registration forms.
// Staff open a form with the contract details, then share its link with
// the guest, who fills in their personal data and completes it.
type RegistrationsHandler struct {
	DB *sql.DB
}

type registrationRequest struct {
	ContractDetails      model.ContractDetails        `json:"contractDetails"`
	GuestIDDetails       model.GuestIDDetails         `json:"guestIdDetails"`
	GuestPersonalDetails model.GuestPersonalDetails   `json:"guestPersonalDetails"`
	GuestAddressDetails  model.GuestAddressDetails    `json:"guestAddressDetails"`
	Signature            *model.RegistrationSignature `json:"signature"`
	Consents             *model.RegistrationConsents  `json:"consents"`
}

// List handles GET /api/registrations. An optional ?status= filters on
// the workflow status.
func (h *RegistrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.RegistrationStatus(r.URL.Query().Get("status"))
	if status != "" && !model.ValidRegistrationStatus(status) {
		jsonError(w, http.StatusBadRequest, "unknown registration status")
		return
	}

	registrations, err := store.ListRegistrations(r.Context(), h.DB, status)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	if registrations == nil {
		registrations = []model.GuestRegistration{}
	}
	jsonResponse(w, http.StatusOK, registrations)
}

// Create handles POST /api/registrations. The saved form is immediately
// released to the guest: its status moves from pending_staff to
// pending_guest, and the record ID is the guest-link capability.
func (h *RegistrationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validContractType(req.ContractDetails.ContractType) {
		jsonError(w, http.StatusBadRequest, "unknown contract type")
		return
	}

	reg := model.GuestRegistration{
		ID:                   uuid.NewString(),
		Status:               model.AdvanceRegistration(model.RegistrationPendingStaff, false),
		ContractDetails:      h.contractDefaults(r, req.ContractDetails),
		GuestIDDetails:       req.GuestIDDetails,
		GuestPersonalDetails: req.GuestPersonalDetails,
		GuestAddressDetails:  req.GuestAddressDetails,
	}

	if err := store.CreateRegistration(r.Context(), h.DB, reg); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create registration")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("registration created", "id", reg.ID, "user", claims.Username)
	jsonResponse(w, http.StatusCreated, reg)
}

// Get handles GET /api/registrations/{id}.
func (h *RegistrationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	reg, err := store.GetRegistration(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load registration")
		return
	}
	if reg == nil {
		jsonError(w, http.StatusNotFound, "registration not found")
		return
	}
	jsonResponse(w, http.StatusOK, reg)
}

// Update handles PUT /api/registrations/{id}: a staff edit of the whole
// form. An unreleased form is released; a completed one stays completed.
func (h *RegistrationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	reg, err := store.GetRegistration(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load registration")
		return
	}
	if reg == nil {
		jsonError(w, http.StatusNotFound, "registration not found")
		return
	}

	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validContractType(req.ContractDetails.ContractType) {
		jsonError(w, http.StatusBadRequest, "unknown contract type")
		return
	}

	reg.Status = model.AdvanceRegistration(reg.Status, false)
	reg.ContractDetails = req.ContractDetails
	reg.GuestIDDetails = req.GuestIDDetails
	reg.GuestPersonalDetails = req.GuestPersonalDetails
	reg.GuestAddressDetails = req.GuestAddressDetails
	reg.Signature = req.Signature
	reg.Consents = req.Consents

	if err := store.UpdateRegistration(r.Context(), h.DB, *reg); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update registration")
		return
	}
	jsonResponse(w, http.StatusOK, reg)
}

// Delete handles DELETE /api/registrations/{id}.
func (h *RegistrationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteRegistration(r.Context(), h.DB, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete registration")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "registration deleted"})
}

// GuestForm handles GET /api/guest-form/{id}: the unauthenticated
// guest-facing view of a released form. The unguessable ID is the only
// credential, matching the shared-link flow.
func (h *RegistrationsHandler) GuestForm(w http.ResponseWriter, r *http.Request) {
	reg, err := store.GetRegistration(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load registration")
		return
	}
	if reg == nil || reg.Status == model.RegistrationPendingStaff {
		jsonError(w, http.StatusNotFound, "registration not found")
		return
	}
	jsonResponse(w, http.StatusOK, reg)
}

// GuestSubmit handles POST /api/guest-form/{id}: the guest sends their
// personal data, address, signature and consents, completing the
// registration. The staff-side contract details are not touched.
func (h *RegistrationsHandler) GuestSubmit(w http.ResponseWriter, r *http.Request) {
	reg, err := store.GetRegistration(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load registration")
		return
	}
	if reg == nil || reg.Status == model.RegistrationPendingStaff {
		jsonError(w, http.StatusNotFound, "registration not found")
		return
	}

	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GuestPersonalDetails.Name == "" || req.GuestIDDetails.DocumentNumber == "" {
		jsonError(w, http.StatusBadRequest, "name and document number required")
		return
	}

	reg.Status = model.AdvanceRegistration(reg.Status, true)
	reg.GuestIDDetails = req.GuestIDDetails
	reg.GuestPersonalDetails = req.GuestPersonalDetails
	reg.GuestAddressDetails = req.GuestAddressDetails
	reg.Signature = req.Signature
	reg.Consents = req.Consents

	if err := store.UpdateRegistration(r.Context(), h.DB, *reg); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update registration")
		return
	}

	slog.Info("registration completed by guest", "id", reg.ID)
	jsonResponse(w, http.StatusOK, reg)
}

// contractDefaults fills the fields a freshly opened form starts with:
// today's formalization date, a one-night stay from today, a single
// traveler, and the establishment name from the fiscal details.
func (h *RegistrationsHandler) contractDefaults(r *http.Request, c model.ContractDetails) model.ContractDetails {
	if c.FormalizationDate == "" {
		c.FormalizationDate = model.Today()
	}
	if c.ContractType == "" {
		c.ContractType = "RESERVA"
	}
	if c.CheckInDate == "" {
		c.CheckInDate = model.Today()
	}
	if c.CheckOutDate == "" {
		c.CheckOutDate = model.AddDays(c.CheckInDate, 1)
	}
	if c.Travelers < 1 {
		c.Travelers = 1
	}
	if c.EstablishmentName == "" {
		if fiscal, err := store.GetFiscalDetails(r.Context(), h.DB); err == nil {
			c.EstablishmentName = fiscal.CompanyName
		}
	}
	return c
}

func validContractType(t string) bool {
	return t == "" || t == "RESERVA" || t == "CONTRATO_EN_CURSO"
}
