package model

import "time"

// TimeSlot is a booked time window within a single day, "HH:MM" 24-hour clock.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DiningSelection holds diner counts per meal category for one day.
type DiningSelection struct {
	Breakfast      int `json:"breakfast"`
	Lunch          int `json:"lunch"`
	Dinner         int `json:"dinner"`
	MorningSnack   int `json:"morningSnack"`
	AfternoonSnack int `json:"afternoonSnack"`
}

// IsZero reports whether no meal has any diners.
func (d DiningSelection) IsZero() bool {
	return d.Breakfast == 0 && d.Lunch == 0 && d.Dinner == 0 &&
		d.MorningSnack == 0 && d.AfternoonSnack == 0
}

// Count returns the diner count for a meal category ID, or 0 for an
// unknown ID.
func (d DiningSelection) Count(mealID string) int {
	switch mealID {
	case "breakfast":
		return d.Breakfast
	case "lunch":
		return d.Lunch
	case "dinner":
		return d.Dinner
	case "morningSnack":
		return d.MorningSnack
	case "afternoonSnack":
		return d.AfternoonSnack
	}
	return 0
}

// Add returns the per-meal sum of two selections.
func (d DiningSelection) Add(o DiningSelection) DiningSelection {
	return DiningSelection{
		Breakfast:      d.Breakfast + o.Breakfast,
		Lunch:          d.Lunch + o.Lunch,
		Dinner:         d.Dinner + o.Dinner,
		MorningSnack:   d.MorningSnack + o.MorningSnack,
		AfternoonSnack: d.AfternoonSnack + o.AfternoonSnack,
	}
}

// OtherServices maps date → service type ID → booked time slots.
type OtherServices map[string]map[string][]TimeSlot

// UnitServices maps date → service type ID → unit count (e.g. photocopies).
type UnitServices map[string]map[string]int

// DiningMap maps date → diner counts per meal category.
type DiningMap map[string]DiningSelection

// Booking is one logical guest action: a group of units reserved together
// for a shared date range. Guest details and the dining/service maps live
// here exactly once; the occupied units hang off it as Occupancy rows.
type Booking struct {
	ID            string        `json:"id"`
	GuestName     string        `json:"guestName"`
	GroupName     string        `json:"groupName,omitempty"`
	DNI           string        `json:"dni"`
	Phone         string        `json:"phone"`
	Observations  string        `json:"observations"`
	CheckIn       string        `json:"checkIn"`
	CheckOut      string        `json:"checkOut"`
	OtherServices OtherServices `json:"otherServices,omitempty"`
	UnitServices  UnitServices  `json:"unitServices,omitempty"`
	Dining        DiningMap     `json:"dining,omitempty"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
}

// Occupancy ties one individual unit to a booking for the booking's stay.
// For any two occupancies of the same unit the [CheckIn, CheckOut) ranges
// must never overlap.
type Occupancy struct {
	ID        string `json:"id"`
	BookingID string `json:"bookingId"`
	UnitID    string `json:"unitId"`
	ItemType  string `json:"itemType"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
}

// Reservation is the flat record the grouping, reporting and import/export
// layers work with: one occupied unit with the owning booking's guest
// details joined in. Field names and JSON keys match the legacy export
// format, so exported files round-trip.
type Reservation struct {
	ID            string        `json:"id"`
	RoomID        string        `json:"roomId"`
	RoomType      string        `json:"roomType"`
	GuestName     string        `json:"guestName"`
	GroupName     string        `json:"groupName,omitempty"`
	DNI           string        `json:"dni"`
	Phone         string        `json:"phone"`
	Observations  string        `json:"observations"`
	CheckIn       string        `json:"checkIn"`
	CheckOut      string        `json:"checkOut"`
	OtherServices OtherServices `json:"otherServices,omitempty"`
	UnitServices  UnitServices  `json:"unitServices,omitempty"`
	Dining        DiningMap     `json:"dining,omitempty"`
}

// GroupKey returns the key reservations are grouped under: the group name
// when present, otherwise the guest name.
func (r Reservation) GroupKey() string {
	if r.GroupName != "" {
		return r.GroupName
	}
	return r.GuestName
}

// GroupedReservation is a derived per-group summary. It is recomputed from
// the reservation list on demand and never stored.
type GroupedReservation struct {
	GuestName            string         `json:"guestName"`
	GroupName            string         `json:"groupName,omitempty"`
	MinCheckIn           string         `json:"minCheckIn"`
	MaxCheckOut          string         `json:"maxCheckOut"`
	RoomSummary          map[string]int `json:"roomSummary"`
	OtherServicesSummary OtherServices  `json:"otherServicesSummary"`
	UnitServicesSummary  UnitServices   `json:"unitServicesSummary"`
	DiningSummary        DiningMap      `json:"diningSummary"`
	TotalGuests          int            `json:"totalGuests"`
	Reservations         []Reservation  `json:"reservations"`
}

// Key returns the grouping key of the summary.
func (g GroupedReservation) Key() string {
	if g.GroupName != "" {
		return g.GroupName
	}
	return g.GuestName
}

// GroupedReservationWithCost adds the estimated total cost to a group.
type GroupedReservationWithCost struct {
	GroupedReservation
	TotalCost float64 `json:"totalCost"`
}

// FiscalDetails are the company details printed on invoices, persisted in
// the settings store.
type FiscalDetails struct {
	CompanyName string `json:"companyName"`
	TaxID       string `json:"taxId"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}
