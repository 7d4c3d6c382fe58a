package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/erazemk/albergue/internal/db"
	"github.com/erazemk/albergue/internal/model"
)

func testRegistration(id string, status model.RegistrationStatus) model.GuestRegistration {
	return model.GuestRegistration{
		ID:     id,
		Status: status,
		ContractDetails: model.ContractDetails{
			PoliceID:          "H-0042",
			EstablishmentName: "Albergue Mª Rosa Molas",
			ContractNumber:    "2024-017",
			FormalizationDate: "2024-03-01",
			ContractType:      "RESERVA",
			CheckInDate:       "2024-03-01",
			CheckOutDate:      "2024-03-02",
			RoomNumber:        "101",
			Travelers:         1,
			PaymentType:       "EFECT",
		},
		GuestPersonalDetails: model.GuestPersonalDetails{
			Name:         "María",
			FirstSurname: "García",
			Nationality:  "España",
		},
	}
}

func TestRegistrationRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	reg := testRegistration("reg-1", model.RegistrationPendingGuest)
	if err := CreateRegistration(ctx, database, reg); err != nil {
		t.Fatalf("CreateRegistration: %v", err)
	}

	got, err := GetRegistration(ctx, database, "reg-1")
	if err != nil {
		t.Fatalf("GetRegistration: %v", err)
	}
	if got == nil {
		t.Fatal("expected registration, got nil")
	}
	if !reflect.DeepEqual(*got, reg) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", *got, reg)
	}
}

func TestGetRegistrationMissing(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetRegistration(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("GetRegistration: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing registration, got %+v", got)
	}
}

func TestUpdateRegistrationStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	reg := testRegistration("reg-1", model.RegistrationPendingGuest)
	if err := CreateRegistration(ctx, database, reg); err != nil {
		t.Fatalf("CreateRegistration: %v", err)
	}

	// Guest completes the form: new sections, new status.
	reg.Status = model.RegistrationCompleted
	reg.GuestIDDetails = model.GuestIDDetails{DocumentType: "NIF", DocumentNumber: "12345678Z"}
	reg.Signature = &model.RegistrationSignature{Signed: true, LocationAndDate: "Castellón, 2024-03-01"}
	reg.Consents = &model.RegistrationConsents{HealthData: true}
	if err := UpdateRegistration(ctx, database, reg); err != nil {
		t.Fatalf("UpdateRegistration: %v", err)
	}

	got, err := GetRegistration(ctx, database, "reg-1")
	if err != nil {
		t.Fatalf("GetRegistration: %v", err)
	}
	if got.Status != model.RegistrationCompleted {
		t.Errorf("expected completed status, got %q", got.Status)
	}
	if got.Signature == nil || !got.Signature.Signed {
		t.Error("expected signed signature after update")
	}
	if got.GuestIDDetails.DocumentNumber != "12345678Z" {
		t.Errorf("expected updated document number, got %q", got.GuestIDDetails.DocumentNumber)
	}
}

func TestUpdateRegistrationMissing(t *testing.T) {
	database := db.NewTestDB(t)

	reg := testRegistration("ghost", model.RegistrationPendingGuest)
	if err := UpdateRegistration(context.Background(), database, reg); err == nil {
		t.Error("expected error updating a missing registration")
	}
}

func TestListRegistrationsByStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, reg := range []model.GuestRegistration{
		testRegistration("reg-1", model.RegistrationPendingGuest),
		testRegistration("reg-2", model.RegistrationCompleted),
		testRegistration("reg-3", model.RegistrationPendingGuest),
	} {
		if err := CreateRegistration(ctx, database, reg); err != nil {
			t.Fatalf("CreateRegistration(%s): %v", reg.ID, err)
		}
	}

	all, err := ListRegistrations(ctx, database, "")
	if err != nil {
		t.Fatalf("ListRegistrations: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 registrations, got %d", len(all))
	}

	pending, err := ListRegistrations(ctx, database, model.RegistrationPendingGuest)
	if err != nil {
		t.Fatalf("ListRegistrations(pending_guest): %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending registrations, got %d", len(pending))
	}
	for _, reg := range pending {
		if reg.Status != model.RegistrationPendingGuest {
			t.Errorf("filtered list contains status %q", reg.Status)
		}
	}
}

func TestDeleteRegistration(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := CreateRegistration(ctx, database, testRegistration("reg-1", model.RegistrationPendingGuest)); err != nil {
		t.Fatalf("CreateRegistration: %v", err)
	}
	if err := DeleteRegistration(ctx, database, "reg-1"); err != nil {
		t.Fatalf("DeleteRegistration: %v", err)
	}

	got, err := GetRegistration(ctx, database, "reg-1")
	if err != nil {
		t.Fatalf("GetRegistration: %v", err)
	}
	if got != nil {
		t.Error("expected registration gone after delete")
	}
}
