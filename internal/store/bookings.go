package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/albergue/internal/booking"
	"github.com/erazemk/albergue/internal/model"
)

// CreateBooking allocates units for every requested item type and persists
// the booking with its occupancies in a single transaction. The request is
// all-or-nothing: if any type has insufficient free units for the stay, the
// transaction rolls back and the returned error wraps
// *booking.InsufficientInventoryError.
func CreateBooking(ctx context.Context, db *sql.DB, b model.Booking, selection map[string]int) ([]model.Reservation, error) {
	return saveBooking(ctx, db, b, selection, "")
}

// ReplaceBooking rewrites a guest group wholesale: the group's existing
// bookings are removed and the new booking allocated against the remaining
// reservations, all in one transaction. A failed allocation leaves the
// original group untouched.
func ReplaceBooking(ctx context.Context, db *sql.DB, guestName string, b model.Booking, selection map[string]int) ([]model.Reservation, error) {
	if guestName == "" {
		return nil, fmt.Errorf("guest name required")
	}
	return saveBooking(ctx, db, b, selection, guestName)
}

// saveBooking is the shared create/replace path. When replaceGuest is
// non-empty, that guest's bookings are excluded from the availability
// check and deleted before the new ones are inserted.
func saveBooking(ctx context.Context, db *sql.DB, b model.Booking, selection map[string]int, replaceGuest string) ([]model.Reservation, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Base reservations: everything except the group being replaced.
	existing, err := listOccupancyIntervals(ctx, tx, replaceGuest)
	if err != nil {
		return nil, err
	}

	details := booking.GuestDetails{
		Name:          b.GuestName,
		GroupName:     b.GroupName,
		DNI:           b.DNI,
		Phone:         b.Phone,
		Observations:  b.Observations,
		OtherServices: b.OtherServices,
		UnitServices:  b.UnitServices,
		Dining:        b.Dining,
	}

	allocated, err := booking.AllocateAll(selection, b.CheckIn, b.CheckOut, existing, details)
	if err != nil {
		return nil, fmt.Errorf("allocating units: %w", err)
	}

	if replaceGuest != "" {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bookings WHERE guest_name = ?`, replaceGuest,
		); err != nil {
			return nil, fmt.Errorf("removing replaced bookings: %w", err)
		}
	}

	if len(allocated) == 0 {
		// Nothing requested: a no-op create, or a replace that dropped
		// the whole group.
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing booking: %w", err)
		}
		return nil, nil
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	otherServices, unitServices, dining, err := marshalBookingMaps(b)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (id, guest_name, group_name, dni, phone, observations,
		                       check_in, check_out, other_services, unit_services, dining)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.GuestName, nullable(b.GroupName), b.DNI, b.Phone, b.Observations,
		b.CheckIn, b.CheckOut, otherServices, unitServices, dining,
	); err != nil {
		return nil, fmt.Errorf("inserting booking: %w", err)
	}

	for _, res := range allocated {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO occupancies (id, booking_id, unit_id, item_type, check_in, check_out)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			res.ID, b.ID, res.RoomID, res.RoomType, res.CheckIn, res.CheckOut,
		); err != nil {
			return nil, fmt.Errorf("inserting occupancy for %s: %w", res.RoomID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing booking: %w", err)
	}
	return allocated, nil
}

// DeleteGroup hard-deletes every booking of a guest; occupancies cascade.
// Other guests' records are untouched.
func DeleteGroup(ctx context.Context, db *sql.DB, guestName string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM bookings WHERE guest_name = ?`, guestName,
	)
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	return nil
}

// ListReservations returns the flat reservation view: one record per
// occupied unit with the owning booking's guest details joined in, in
// insertion order.
func ListReservations(ctx context.Context, db *sql.DB) ([]model.Reservation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT o.id, o.unit_id, o.item_type, o.check_in, o.check_out,
		        b.guest_name, b.group_name, b.dni, b.phone, b.observations,
		        b.other_services, b.unit_services, b.dining
		 FROM occupancies o
		 JOIN bookings b ON b.id = o.booking_id
		 ORDER BY b.created_at, b.id, o.rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func scanReservation(rows *sql.Rows) (model.Reservation, error) {
	var res model.Reservation
	var groupName, dni, phone, observations sql.NullString
	var otherServices, unitServices, dining sql.NullString

	if err := rows.Scan(&res.ID, &res.RoomID, &res.RoomType, &res.CheckIn, &res.CheckOut,
		&res.GuestName, &groupName, &dni, &phone, &observations,
		&otherServices, &unitServices, &dining); err != nil {
		return res, fmt.Errorf("scanning reservation: %w", err)
	}

	res.GroupName = groupName.String
	res.DNI = dni.String
	res.Phone = phone.String
	res.Observations = observations.String

	// Nested maps are stored as JSON; malformed blobs degrade to empty
	// maps rather than failing the whole listing.
	if otherServices.Valid && otherServices.String != "" {
		_ = json.Unmarshal([]byte(otherServices.String), &res.OtherServices)
	}
	if unitServices.Valid && unitServices.String != "" {
		_ = json.Unmarshal([]byte(unitServices.String), &res.UnitServices)
	}
	if dining.Valid && dining.String != "" {
		_ = json.Unmarshal([]byte(dining.String), &res.Dining)
	}
	return res, nil
}

// listOccupancyIntervals loads the unit/date-range data the allocation
// engine needs, optionally excluding one guest's bookings.
func listOccupancyIntervals(ctx context.Context, tx *sql.Tx, excludeGuest string) ([]model.Reservation, error) {
	query := `SELECT o.unit_id, o.item_type, o.check_in, o.check_out
	          FROM occupancies o
	          JOIN bookings b ON b.id = o.booking_id`
	args := []any{}
	if excludeGuest != "" {
		query += ` WHERE b.guest_name != ?`
		args = append(args, excludeGuest)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading occupancies: %w", err)
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.RoomID, &res.RoomType, &res.CheckIn, &res.CheckOut); err != nil {
			return nil, fmt.Errorf("scanning occupancy: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func marshalBookingMaps(b model.Booking) (otherServices, unitServices, dining string, err error) {
	if len(b.OtherServices) > 0 {
		data, merr := json.Marshal(b.OtherServices)
		if merr != nil {
			return "", "", "", fmt.Errorf("encoding other services: %w", merr)
		}
		otherServices = string(data)
	}
	if len(b.UnitServices) > 0 {
		data, merr := json.Marshal(b.UnitServices)
		if merr != nil {
			return "", "", "", fmt.Errorf("encoding unit services: %w", merr)
		}
		unitServices = string(data)
	}
	if len(b.Dining) > 0 {
		data, merr := json.Marshal(b.Dining)
		if merr != nil {
			return "", "", "", fmt.Errorf("encoding dining: %w", merr)
		}
		dining = string(data)
	}
	return otherServices, unitServices, dining, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
