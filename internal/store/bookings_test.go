package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/albergue/internal/booking"
	"github.com/erazemk/albergue/internal/db"
	"github.com/erazemk/albergue/internal/model"
)

func testBooking(guest string, checkIn, checkOut string) model.Booking {
	return model.Booking{
		GuestName: guest,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	}
}

func TestCreateBookingPersistsOccupancies(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	allocated, err := CreateBooking(ctx, database,
		testBooking("Alice", "2024-03-01", "2024-03-03"),
		map[string]int{"quad": 2, "single": 1},
	)
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	if len(allocated) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(allocated))
	}

	reservations, err := ListReservations(ctx, database)
	if err != nil {
		t.Fatalf("listing reservations: %v", err)
	}
	if len(reservations) != 3 {
		t.Fatalf("expected 3 persisted reservations, got %d", len(reservations))
	}
	// Catalog order: quads first, deterministic unit choice.
	if reservations[0].RoomID != "quad_16" || reservations[1].RoomID != "quad_18" {
		t.Errorf("unexpected allocation order: %s, %s", reservations[0].RoomID, reservations[1].RoomID)
	}
	if reservations[0].GuestName != "Alice" {
		t.Errorf("guest details not joined: %+v", reservations[0])
	}
}

func TestCreateBookingAllOrNothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Exhaust both special rooms.
	if _, err := CreateBooking(ctx, database,
		testBooking("Alice", "2024-03-01", "2024-03-05"),
		map[string]int{"special": 2},
	); err != nil {
		t.Fatalf("seeding bookings: %v", err)
	}

	// Quads are free, but the special request cannot be satisfied, so
	// nothing from this booking may be persisted.
	_, err := CreateBooking(ctx, database,
		testBooking("Bob", "2024-03-02", "2024-03-04"),
		map[string]int{"quad": 1, "special": 1},
	)
	var insufficient *booking.InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientInventoryError, got %v", err)
	}
	if insufficient.ItemType != "special" || insufficient.Available != 0 {
		t.Errorf("unexpected error detail: %+v", insufficient)
	}

	reservations, err := ListReservations(ctx, database)
	if err != nil {
		t.Fatalf("listing reservations: %v", err)
	}
	for _, res := range reservations {
		if res.GuestName == "Bob" {
			t.Errorf("partial booking leaked into storage: %+v", res)
		}
	}
}

func TestNoDoubleBookingAcrossRequests(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// 4 doubles exist; two overlapping bookings of 2 fill them.
	for _, guest := range []string{"Alice", "Bob"} {
		if _, err := CreateBooking(ctx, database,
			testBooking(guest, "2024-03-01", "2024-03-04"),
			map[string]int{"double": 2},
		); err != nil {
			t.Fatalf("booking for %s: %v", guest, err)
		}
	}

	if _, err := CreateBooking(ctx, database,
		testBooking("Carmen", "2024-03-02", "2024-03-03"),
		map[string]int{"double": 1},
	); err == nil {
		t.Fatal("expected overlapping request to fail once doubles are full")
	}

	// Same-day turnover: checking in on the others' checkout day works.
	if _, err := CreateBooking(ctx, database,
		testBooking("Carmen", "2024-03-04", "2024-03-06"),
		map[string]int{"double": 1},
	); err != nil {
		t.Fatalf("same-day turnover rejected: %v", err)
	}

	reservations, _ := ListReservations(ctx, database)
	seen := map[string]bool{}
	for _, res := range reservations {
		key := res.RoomID + res.CheckIn
		if seen[key] {
			t.Errorf("unit %s double-booked", res.RoomID)
		}
		seen[key] = true
	}
}

func TestReplaceBookingExcludesOwnGroup(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Alice holds both special rooms.
	if _, err := CreateBooking(ctx, database,
		testBooking("Alice", "2024-03-01", "2024-03-05"),
		map[string]int{"special": 2},
	); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	// Editing her own stay keeps using the rooms she already holds.
	allocated, err := ReplaceBooking(ctx, database, "Alice",
		testBooking("Alice", "2024-03-02", "2024-03-06"),
		map[string]int{"special": 2},
	)
	if err != nil {
		t.Fatalf("replacing booking: %v", err)
	}
	if len(allocated) != 2 {
		t.Fatalf("expected 2 reservations after edit, got %d", len(allocated))
	}

	reservations, _ := ListReservations(ctx, database)
	if len(reservations) != 2 {
		t.Fatalf("expected old bookings replaced, got %d reservations", len(reservations))
	}
	if reservations[0].CheckIn != "2024-03-02" {
		t.Errorf("edit did not take effect: %+v", reservations[0])
	}
}

func TestReplaceBookingFailureLeavesOriginal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateBooking(ctx, database,
		testBooking("Alice", "2024-03-01", "2024-03-03"),
		map[string]int{"single": 1},
	); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	// Impossible edit: more quads than exist.
	if _, err := ReplaceBooking(ctx, database, "Alice",
		testBooking("Alice", "2024-03-01", "2024-03-03"),
		map[string]int{"quad": 7},
	); err == nil {
		t.Fatal("expected oversize edit to fail")
	}

	reservations, _ := ListReservations(ctx, database)
	if len(reservations) != 1 || reservations[0].RoomType != "single" {
		t.Errorf("failed edit modified stored data: %+v", reservations)
	}
}

func TestDeleteGroupLeavesOthers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, guest := range []string{"Alice", "Bob"} {
		if _, err := CreateBooking(ctx, database,
			testBooking(guest, "2024-03-01", "2024-03-03"),
			map[string]int{"single": 1},
		); err != nil {
			t.Fatalf("booking for %s: %v", guest, err)
		}
	}

	if err := DeleteGroup(ctx, database, "Alice"); err != nil {
		t.Fatalf("deleting group: %v", err)
	}

	reservations, _ := ListReservations(ctx, database)
	if len(reservations) != 1 || reservations[0].GuestName != "Bob" {
		t.Errorf("expected only Bob's reservation to remain, got %+v", reservations)
	}

	// Occupancies must cascade with their booking.
	var count int
	if err := database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM occupancies`,
	).Scan(&count); err != nil {
		t.Fatalf("counting occupancies: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 occupancy after cascade, got %d", count)
	}
}

func TestBookingDetailsRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	b := model.Booking{
		GuestName:    "Alice",
		GroupName:    "Coro Parroquial",
		DNI:          "12345678Z",
		Phone:        "600123456",
		Observations: "Llegan tarde",
		CheckIn:      "2024-03-01",
		CheckOut:     "2024-03-03",
		OtherServices: model.OtherServices{
			"2024-03-01": {"small_hall": {{StartTime: "10:00", EndTime: "12:00"}}},
		},
		UnitServices: model.UnitServices{
			"2024-03-02": {"secretarial_services": 25},
		},
		Dining: model.DiningMap{
			"2024-03-01": {Breakfast: 4, Lunch: 4},
		},
	}

	if _, err := CreateBooking(ctx, database, b, map[string]int{"quad": 1}); err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	reservations, err := ListReservations(ctx, database)
	if err != nil {
		t.Fatalf("listing reservations: %v", err)
	}
	res := reservations[0]
	if res.GroupName != "Coro Parroquial" || res.DNI != "12345678Z" {
		t.Errorf("guest details lost: %+v", res)
	}
	if len(res.OtherServices["2024-03-01"]["small_hall"]) != 1 {
		t.Errorf("other services lost: %+v", res.OtherServices)
	}
	if res.UnitServices["2024-03-02"]["secretarial_services"] != 25 {
		t.Errorf("unit services lost: %+v", res.UnitServices)
	}
	if res.Dining["2024-03-01"].Breakfast != 4 {
		t.Errorf("dining lost: %+v", res.Dining)
	}
}
