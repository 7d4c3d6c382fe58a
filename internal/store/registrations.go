package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/erazemk/albergue/internal/model"
)

// The registration form is stored as one JSON document next to its status
// column: the nested sections (contract, identity, personal, address) are
// only ever read and written as a whole, but lists filter on status.

// CreateRegistration inserts a new guest registration.
func CreateRegistration(ctx context.Context, db *sql.DB, reg model.GuestRegistration) error {
	form, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encoding registration: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO guest_registrations (id, status, form) VALUES (?, ?, ?)`,
		reg.ID, string(reg.Status), string(form),
	)
	if err != nil {
		return fmt.Errorf("inserting registration: %w", err)
	}
	return nil
}

// UpdateRegistration replaces the form and status of an existing
// registration. Returns an error if the registration does not exist.
func UpdateRegistration(ctx context.Context, db *sql.DB, reg model.GuestRegistration) error {
	form, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encoding registration: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE guest_registrations
		 SET status = ?, form = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		string(reg.Status), string(form), reg.ID,
	)
	if err != nil {
		return fmt.Errorf("updating registration: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating registration: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("registration %s not found", reg.ID)
	}
	return nil
}

// GetRegistration returns a registration by ID, or nil if not found.
func GetRegistration(ctx context.Context, db *sql.DB, id string) (*model.GuestRegistration, error) {
	var form string
	var status string
	err := db.QueryRowContext(ctx,
		`SELECT status, form FROM guest_registrations WHERE id = ?`, id,
	).Scan(&status, &form)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying registration: %w", err)
	}

	var reg model.GuestRegistration
	if err := json.Unmarshal([]byte(form), &reg); err != nil {
		return nil, fmt.Errorf("decoding registration: %w", err)
	}
	reg.ID = id
	reg.Status = model.RegistrationStatus(status)
	return &reg, nil
}

// ListRegistrations returns all registrations, newest first. An empty
// status lists everything; otherwise only matching registrations.
func ListRegistrations(ctx context.Context, db *sql.DB, status model.RegistrationStatus) ([]model.GuestRegistration, error) {
	query := `SELECT id, status, form FROM guest_registrations ORDER BY created_at DESC, id`
	args := []any{}
	if status != "" {
		query = `SELECT id, status, form FROM guest_registrations WHERE status = ?
		         ORDER BY created_at DESC, id`
		args = append(args, string(status))
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying registrations: %w", err)
	}
	defer rows.Close()

	var registrations []model.GuestRegistration
	for rows.Next() {
		var id, st, form string
		if err := rows.Scan(&id, &st, &form); err != nil {
			return nil, fmt.Errorf("scanning registration: %w", err)
		}
		var reg model.GuestRegistration
		if err := json.Unmarshal([]byte(form), &reg); err != nil {
			return nil, fmt.Errorf("decoding registration %s: %w", id, err)
		}
		reg.ID = id
		reg.Status = model.RegistrationStatus(st)
		registrations = append(registrations, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating registrations: %w", err)
	}
	return registrations, nil
}

// DeleteRegistration removes a registration by ID.
func DeleteRegistration(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM guest_registrations WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("deleting registration: %w", err)
	}
	return nil
}
