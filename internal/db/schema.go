package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS branding (
    id        INTEGER PRIMARY KEY CHECK (id = 1),
    logo      BLOB,
    logo_mime TEXT
);

CREATE TABLE IF NOT EXISTS bookings (
    id             TEXT PRIMARY KEY,
    guest_name     TEXT NOT NULL,
    group_name     TEXT,
    dni            TEXT,
    phone          TEXT,
    observations   TEXT,
    check_in       TEXT NOT NULL,
    check_out      TEXT NOT NULL CHECK (check_out > check_in),
    other_services TEXT,
    unit_services  TEXT,
    dining         TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_bookings_guest ON bookings(guest_name);

CREATE TABLE IF NOT EXISTS occupancies (
    id         TEXT PRIMARY KEY,
    booking_id TEXT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    unit_id    TEXT NOT NULL,
    item_type  TEXT NOT NULL,
    check_in   TEXT NOT NULL,
    check_out  TEXT NOT NULL CHECK (check_out > check_in)
);

CREATE INDEX IF NOT EXISTS idx_occupancies_unit ON occupancies(unit_id, check_in, check_out);
CREATE INDEX IF NOT EXISTS idx_occupancies_booking ON occupancies(booking_id);

CREATE TABLE IF NOT EXISTS guest_registrations (
    id         TEXT PRIMARY KEY,
    status     TEXT NOT NULL CHECK (status IN ('pending_staff', 'pending_guest', 'completed')),
    form       TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_guest_registrations_status ON guest_registrations(status);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
