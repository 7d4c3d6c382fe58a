package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/albergue/internal/model"
)

// ErrImportFormat is returned when an import payload is not a JSON array
// of reservation records.
var ErrImportFormat = errors.New("import data must be a JSON array of reservations")

// ExportReservations serializes every reservation as an indented JSON
// array, suitable for backup and later re-import.
func ExportReservations(ctx context.Context, db *sql.DB) ([]byte, error) {
	reservations, err := ListReservations(ctx, db)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}

	data, err := json.MarshalIndent(reservations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding reservations: %w", err)
	}
	return data, nil
}

// ImportReservations wholesale-replaces the booking data with the given
// JSON array of flat reservation records. Each record becomes its own
// booking with a single occupancy, so a later export reproduces the
// imported data. A payload that is not an array fails with
// ErrImportFormat before anything is touched.
func ImportReservations(ctx context.Context, db *sql.DB, data []byte) (int, error) {
	// Shallow shape check first, so a malformed payload never wipes data.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	trimmed := firstNonSpace(raw)
	if trimmed != '[' {
		return 0, ErrImportFormat
	}

	var reservations []model.Reservation
	if err := json.Unmarshal(data, &reservations); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return 0, fmt.Errorf("clearing bookings: %w", err)
	}

	for i, res := range reservations {
		if res.ID == "" {
			res.ID = uuid.NewString()
		}
		if res.GuestName == "" || res.RoomID == "" || res.CheckIn == "" || res.CheckOut == "" {
			return 0, fmt.Errorf("%w: record %d is missing required fields", ErrImportFormat, i)
		}

		b := model.Booking{
			ID:            uuid.NewString(),
			GuestName:     res.GuestName,
			GroupName:     res.GroupName,
			DNI:           res.DNI,
			Phone:         res.Phone,
			Observations:  res.Observations,
			CheckIn:       res.CheckIn,
			CheckOut:      res.CheckOut,
			OtherServices: res.OtherServices,
			UnitServices:  res.UnitServices,
			Dining:        res.Dining,
		}

		otherServices, unitServices, dining, err := marshalBookingMaps(b)
		if err != nil {
			return 0, err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bookings (id, guest_name, group_name, dni, phone, observations,
			                       check_in, check_out, other_services, unit_services, dining)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.GuestName, nullable(b.GroupName), b.DNI, b.Phone, b.Observations,
			b.CheckIn, b.CheckOut, otherServices, unitServices, dining,
		); err != nil {
			return 0, fmt.Errorf("importing record %d: %w", i, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO occupancies (id, booking_id, unit_id, item_type, check_in, check_out)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			res.ID, b.ID, res.RoomID, res.RoomType, res.CheckIn, res.CheckOut,
		); err != nil {
			return 0, fmt.Errorf("importing record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(reservations), nil
}

func firstNonSpace(data []byte) byte {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}
