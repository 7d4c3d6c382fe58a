package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/erazemk/albergue/internal/model"
)

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	// Try to generate and insert first (safe against races).
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}

// defaultFiscalDetails seed the invoice header until an admin sets real ones.
var defaultFiscalDetails = model.FiscalDetails{
	CompanyName: "Albergue Mª Rosa Molas",
	TaxID:       "G12345678",
	Address:     "Calle Falsa, 123, 12001 Castellón, España",
	Phone:       "964 000 000",
	Email:       "contacto@albergue.es",
}

// GetFiscalDetails returns the stored fiscal details, or the built-in
// defaults if none have been saved yet.
func GetFiscalDetails(ctx context.Context, db *sql.DB) (model.FiscalDetails, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'fiscal_details'`,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return defaultFiscalDetails, nil
	}
	if err != nil {
		return model.FiscalDetails{}, fmt.Errorf("querying fiscal details: %w", err)
	}

	var details model.FiscalDetails
	if err := json.Unmarshal([]byte(value), &details); err != nil {
		return model.FiscalDetails{}, fmt.Errorf("decoding fiscal details: %w", err)
	}
	return details, nil
}

// SetFiscalDetails stores the fiscal details shown on invoices.
func SetFiscalDetails(ctx context.Context, db *sql.DB, details model.FiscalDetails) error {
	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encoding fiscal details: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES ('fiscal_details', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("storing fiscal details: %w", err)
	}
	return nil
}

// SetLogo replaces the invoice logo. An empty image clears it.
func SetLogo(ctx context.Context, db *sql.DB, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO branding (id, logo, logo_mime) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET logo = excluded.logo, logo_mime = excluded.logo_mime`,
		image, mime,
	)
	if err != nil {
		return fmt.Errorf("storing logo: %w", err)
	}
	return nil
}

// GetLogo returns the invoice logo and its MIME type, or (nil, "") when
// no logo has been uploaded.
func GetLogo(ctx context.Context, db *sql.DB) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT logo, logo_mime FROM branding WHERE id = 1`,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("querying logo: %w", err)
	}
	return image, mime.String, nil
}
