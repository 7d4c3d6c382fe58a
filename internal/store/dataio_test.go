package store

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/erazemk/albergue/internal/db"
	"github.com/erazemk/albergue/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateBooking(ctx, database,
		model.Booking{
			GuestName: "Alice",
			CheckIn:   "2024-03-01",
			CheckOut:  "2024-03-03",
			Dining:    model.DiningMap{"2024-03-01": {Breakfast: 4}},
		},
		map[string]int{"quad": 1},
	); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	exported, err := ExportReservations(ctx, database)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	before, err := ListReservations(ctx, database)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}

	count, err := ImportReservations(ctx, database, exported)
	if err != nil {
		t.Fatalf("importing: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 imported record, got %d", count)
	}

	after, err := ListReservations(ctx, database)
	if err != nil {
		t.Fatalf("listing after import: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("round trip changed data:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestExportUsesLegacyFieldNames(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateBooking(ctx, database,
		model.Booking{GuestName: "Alice", CheckIn: "2024-03-01", CheckOut: "2024-03-02"},
		map[string]int{"single": 1},
	); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	exported, err := ExportReservations(ctx, database)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(exported, &records); err != nil {
		t.Fatalf("export is not a JSON array: %v", err)
	}
	record := records[0]
	for _, field := range []string{"id", "roomId", "roomType", "guestName", "checkIn", "checkOut"} {
		if _, ok := record[field]; !ok {
			t.Errorf("export missing field %q: %v", field, record)
		}
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateBooking(ctx, database,
		model.Booking{GuestName: "Alice", CheckIn: "2024-03-01", CheckOut: "2024-03-02"},
		map[string]int{"single": 1},
	); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	for _, payload := range []string{`{"not": "an array"}`, `"string"`, `42`, `not json`} {
		if _, err := ImportReservations(ctx, database, []byte(payload)); !errors.Is(err, ErrImportFormat) {
			t.Errorf("payload %q: expected ErrImportFormat, got %v", payload, err)
		}
	}

	// Rejected imports must leave existing data untouched.
	reservations, err := ListReservations(ctx, database)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(reservations) != 1 || reservations[0].GuestName != "Alice" {
		t.Errorf("rejected import modified data: %+v", reservations)
	}
}

func TestImportGeneratesMissingIDs(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	payload := `[{"roomId": "single_1", "roomType": "single", "guestName": "Bob",
	              "checkIn": "2024-03-01", "checkOut": "2024-03-02"}]`
	if _, err := ImportReservations(ctx, database, []byte(payload)); err != nil {
		t.Fatalf("importing: %v", err)
	}

	reservations, err := ListReservations(ctx, database)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(reservations) != 1 || reservations[0].ID == "" {
		t.Errorf("expected a generated id, got %+v", reservations)
	}
}
