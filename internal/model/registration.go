package model

import "time"

// RegistrationStatus tracks the guest-registration workflow: staff open
// the form and fill the contract, the guest completes their personal data
// through a shared link.
type RegistrationStatus string

const (
	RegistrationPendingStaff RegistrationStatus = "pending_staff"
	RegistrationPendingGuest RegistrationStatus = "pending_guest"
	RegistrationCompleted    RegistrationStatus = "completed"
)

// ValidRegistrationStatus reports whether s is a known workflow status.
func ValidRegistrationStatus(s RegistrationStatus) bool {
	switch s {
	case RegistrationPendingStaff, RegistrationPendingGuest, RegistrationCompleted:
		return true
	}
	return false
}

// AdvanceRegistration returns the status after a save. A guest submission
// always completes the registration; a staff save releases a freshly
// opened form to the guest and otherwise keeps the status.
func AdvanceRegistration(current RegistrationStatus, byGuest bool) RegistrationStatus {
	if byGuest {
		return RegistrationCompleted
	}
	if current == RegistrationPendingStaff {
		return RegistrationPendingGuest
	}
	return current
}

// ContractDetails is the staff-side section of a registration form: the
// police-registry establishment data and the stay being contracted.
type ContractDetails struct {
	PoliceID          string `json:"policeId"`
	EstablishmentName string `json:"establishmentName"`
	ContractNumber    string `json:"contractNumber"`
	FormalizationDate string `json:"formalizationDate"`
	ContractType      string `json:"contractType"` // RESERVA or CONTRATO_EN_CURSO
	CheckInDate       string `json:"checkInDate"`
	CheckOutDate      string `json:"checkOutDate"`
	RoomNumber        string `json:"roomNumber"`
	Travelers         int    `json:"travelers"`
	PaymentType       string `json:"paymentType"`
	HasInternet       bool   `json:"hasInternet"`
}

// GuestIDDetails is the guest's identity document.
type GuestIDDetails struct {
	DocumentType          string `json:"documentType"` // NIF, NIE or Pasaporte
	DocumentNumber        string `json:"documentNumber"`
	SupportDocumentNumber string `json:"supportDocumentNumber,omitempty"`
	ExpeditionDate        string `json:"expeditionDate,omitempty"`
}

// GuestPersonalDetails is the guest's personal data section.
type GuestPersonalDetails struct {
	Name          string `json:"name"`
	FirstSurname  string `json:"firstSurname"`
	SecondSurname string `json:"secondSurname,omitempty"`
	Sex           string `json:"sex"`
	BirthDate     string `json:"birthDate"`
	Nationality   string `json:"nationality"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Kinship       string `json:"kinship,omitempty"`
}

// GuestAddressDetails is the guest's home address section.
type GuestAddressDetails struct {
	Address      string `json:"address"`
	Country      string `json:"country"`
	Province     string `json:"province,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	Locality     string `json:"locality"`
	PostalCode   string `json:"postalCode"`
}

// RegistrationSignature records the guest's signature on submission.
type RegistrationSignature struct {
	Signed          bool   `json:"signed"`
	LocationAndDate string `json:"locationAndDate"`
}

// RegistrationConsents are the guest's data-protection checkboxes.
type RegistrationConsents struct {
	HealthData     bool `json:"healthData"`
	CommercialInfo bool `json:"commercialInfo"`
	ImageUse       bool `json:"imageUse"`
}

// GuestRegistration is one individual guest-registration form. The record
// ID doubles as the capability for the guest-facing link, so it must be
// unguessable.
type GuestRegistration struct {
	ID                   string                 `json:"id"`
	Status               RegistrationStatus     `json:"status"`
	ContractDetails      ContractDetails        `json:"contractDetails"`
	GuestIDDetails       GuestIDDetails         `json:"guestIdDetails"`
	GuestPersonalDetails GuestPersonalDetails   `json:"guestPersonalDetails"`
	GuestAddressDetails  GuestAddressDetails    `json:"guestAddressDetails"`
	Signature            *RegistrationSignature `json:"signature,omitempty"`
	Consents             *RegistrationConsents  `json:"consents,omitempty"`
	CreatedAt            time.Time              `json:"created_at,omitempty"`
}
