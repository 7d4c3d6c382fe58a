// Package booking implements the availability and allocation engine and
// the booking-wizard state machine. Everything here is pure: allocation
// takes the existing reservation list as input and returns new records
// without touching storage.
package booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/albergue/internal/catalog"
	"github.com/erazemk/albergue/internal/model"
)

// Overlaps reports whether the half-open date ranges [aIn, aOut) and
// [bIn, bOut) intersect. Touching endpoints do not overlap: a checkout on
// the same day as another booking's check-in is same-day turnover, which
// is allowed.
func Overlaps(aIn, aOut, bIn, bOut string) bool {
	return aIn < bOut && bIn < aOut
}

// InsufficientInventoryError reports that a requested item type has fewer
// free units than asked for in the requested date range.
type InsufficientInventoryError struct {
	ItemType  string
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for %q: requested %d, available %d",
		e.ItemType, e.Requested, e.Available)
}

// GuestDetails carries the shared fields of one booking action.
type GuestDetails struct {
	Name          string
	GroupName     string
	DNI           string
	Phone         string
	Observations  string
	OtherServices model.OtherServices
	UnitServices  model.UnitServices
	Dining        model.DiningMap
}

// validateStay rejects malformed and empty date ranges before any
// availability work happens.
func validateStay(checkIn, checkOut string) error {
	if !model.ValidDate(checkIn) || !model.ValidDate(checkOut) {
		return fmt.Errorf("malformed stay dates %q, %q", checkIn, checkOut)
	}
	if checkOut <= checkIn {
		return fmt.Errorf("empty stay: check-out %s must be after check-in %s", checkOut, checkIn)
	}
	return nil
}

// FreeUnits returns the units of an item type with no reservation
// overlapping [checkIn, checkOut), in catalog iteration order.
func FreeUnits(typeID, checkIn, checkOut string, existing []model.Reservation) []catalog.Unit {
	var free []catalog.Unit
	for _, unit := range catalog.UnitsOf(typeID) {
		occupied := false
		for _, res := range existing {
			if res.RoomID == unit.ID && Overlaps(checkIn, checkOut, res.CheckIn, res.CheckOut) {
				occupied = true
				break
			}
		}
		if !occupied {
			free = append(free, unit)
		}
	}
	return free
}

// Allocate assigns count concrete units of one item type for the requested
// stay, first-fit over the catalog order, and materializes one Reservation
// per unit with the guest details copied in. A count of zero is a no-op.
// Fails with *InsufficientInventoryError when fewer units are free.
func Allocate(typeID string, count int, checkIn, checkOut string, existing []model.Reservation, details GuestDetails) ([]model.Reservation, error) {
	if count == 0 {
		return nil, nil
	}
	if count < 0 {
		return nil, fmt.Errorf("negative unit count %d for %q", count, typeID)
	}
	if _, ok := catalog.Lookup(typeID); !ok {
		return nil, fmt.Errorf("unknown item type %q", typeID)
	}
	if err := validateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	free := FreeUnits(typeID, checkIn, checkOut, existing)
	if len(free) < count {
		return nil, &InsufficientInventoryError{ItemType: typeID, Requested: count, Available: len(free)}
	}

	reservations := make([]model.Reservation, 0, count)
	for _, unit := range free[:count] {
		reservations = append(reservations, model.Reservation{
			ID:            uuid.NewString(),
			RoomID:        unit.ID,
			RoomType:      unit.Type,
			GuestName:     details.Name,
			GroupName:     details.GroupName,
			DNI:           details.DNI,
			Phone:         details.Phone,
			Observations:  details.Observations,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			OtherServices: details.OtherServices,
			UnitServices:  details.UnitServices,
			Dining:        details.Dining,
		})
	}
	return reservations, nil
}

// AllocateAll allocates every requested item type of a multi-type booking,
// or nothing: the first type that cannot be satisfied fails the whole
// request and no reservations are returned. Types are processed in catalog
// order so the result is deterministic regardless of map iteration.
func AllocateAll(selection map[string]int, checkIn, checkOut string, existing []model.Reservation, details GuestDetails) ([]model.Reservation, error) {
	if err := validateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	for typeID := range selection {
		if _, ok := catalog.Lookup(typeID); !ok {
			return nil, fmt.Errorf("unknown item type %q", typeID)
		}
	}

	var all []model.Reservation
	for _, it := range catalog.ItemTypes() {
		count := selection[it.ID]
		if count == 0 {
			continue
		}
		allocated, err := Allocate(it.ID, count, checkIn, checkOut, existing, details)
		if err != nil {
			return nil, err
		}
		all = append(all, allocated...)
	}
	return all, nil
}
