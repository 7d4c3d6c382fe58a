package report

import (
	"math"
	"testing"

	"github.com/erazemk/albergue/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAccommodationCostTwoNights(t *testing.T) {
	// 1 double (60/day) for 2 nights = 120.
	reservations := []model.Reservation{
		{ID: "r1", RoomID: "double_21", RoomType: "double", GuestName: "Bob",
			CheckIn: "2024-03-01", CheckOut: "2024-03-03"},
	}

	b := Breakdown(Group(reservations)[0])
	if !almostEqual(b.Accommodation, 120) {
		t.Errorf("expected accommodation 120, got %v", b.Accommodation)
	}
	if !almostEqual(b.Total(), 120) {
		t.Errorf("expected total 120, got %v", b.Total())
	}
}

func TestAccommodationMinimumOneNight(t *testing.T) {
	// Malformed dates fall back to a one-night charge rather than zero.
	group := model.GroupedReservation{
		Reservations: []model.Reservation{
			{RoomType: "single", CheckIn: "bad", CheckOut: "dates"},
		},
	}
	if b := Breakdown(group); !almostEqual(b.Accommodation, 40) {
		t.Errorf("expected one-night minimum 40, got %v", b.Accommodation)
	}
}

func TestSlotServiceCharging(t *testing.T) {
	// small_hall is per_day: one full price (33) per booked slot,
	// regardless of duration.
	group := model.GroupedReservation{
		OtherServicesSummary: model.OtherServices{
			"2024-03-01": {"small_hall": {
				{StartTime: "10:00", EndTime: "13:00"},
				{StartTime: "16:00", EndTime: "17:00"},
			}},
		},
	}

	b := Breakdown(group)
	if !almostEqual(b.SlotServices, 66) {
		t.Errorf("expected 2 slots x 33 = 66, got %v", b.SlotServices)
	}
	if b.HourlyServices != 0 {
		t.Errorf("per_day slots must not be prorated by hours, got %v", b.HourlyServices)
	}
}

func TestNonPositiveSlotDurationDiscarded(t *testing.T) {
	group := model.GroupedReservation{
		OtherServicesSummary: model.OtherServices{
			"2024-03-01": {"small_hall": {
				{StartTime: "13:00", EndTime: "13:00"},
			}},
		},
	}
	// Slot charging for non-hourly types does not depend on duration.
	if b := Breakdown(group); !almostEqual(b.SlotServices, 33) {
		t.Errorf("expected 33, got %v", b.SlotServices)
	}

	if h := slotHours(model.TimeSlot{StartTime: "13:00", EndTime: "12:00"}); h != 0 {
		t.Errorf("expected inverted slot to yield 0 hours, got %v", h)
	}
	if h := slotHours(model.TimeSlot{StartTime: "10:00", EndTime: "13:30"}); !almostEqual(h, 3.5) {
		t.Errorf("expected 3.5 hours, got %v", h)
	}
}

func TestUnitServiceCost(t *testing.T) {
	// 50 photocopies at 0.07 each.
	group := model.GroupedReservation{
		UnitServicesSummary: model.UnitServices{
			"2024-03-01": {"secretarial_services": 50},
		},
	}
	if b := Breakdown(group); !almostEqual(b.UnitServices, 3.5) {
		t.Errorf("expected 3.5, got %v", b.UnitServices)
	}
}

func TestDiningCost(t *testing.T) {
	group := model.GroupedReservation{
		DiningSummary: model.DiningMap{
			"2024-03-01": {Breakfast: 2, Lunch: 2},
			"2024-03-02": {Dinner: 3},
		},
	}
	// 2*4.50 + 2*12.00 + 3*10.00 = 63.
	if b := Breakdown(group); !almostEqual(b.Dining, 63) {
		t.Errorf("expected dining 63, got %v", b.Dining)
	}
}

func TestCostAdditivity(t *testing.T) {
	full := model.GroupedReservation{
		Reservations: []model.Reservation{
			{RoomType: "double", CheckIn: "2024-03-01", CheckOut: "2024-03-03"},
		},
		OtherServicesSummary: model.OtherServices{
			"2024-03-01": {"small_hall": {{StartTime: "10:00", EndTime: "12:00"}}},
		},
		UnitServicesSummary: model.UnitServices{
			"2024-03-01": {"secretarial_services": 100},
		},
		DiningSummary: model.DiningMap{
			"2024-03-01": {Lunch: 4},
		},
	}

	b := Breakdown(full)
	if !almostEqual(b.Total(), b.Accommodation+b.HourlyServices+b.SlotServices+b.UnitServices+b.Dining) {
		t.Error("total must equal the sum of components")
	}

	// Removing all dining must not perturb the other components.
	noDining := full
	noDining.DiningSummary = nil
	nb := Breakdown(noDining)
	if !almostEqual(nb.Accommodation, b.Accommodation) ||
		!almostEqual(nb.SlotServices, b.SlotServices) ||
		!almostEqual(nb.UnitServices, b.UnitServices) {
		t.Error("removing dining changed unrelated components")
	}
	if nb.Dining != 0 {
		t.Errorf("expected zero dining cost, got %v", nb.Dining)
	}
}

func TestBuildInvoice(t *testing.T) {
	reservations := []model.Reservation{
		{ID: "r1", RoomID: "double_21", RoomType: "double", GuestName: "Bob",
			CheckIn: "2024-03-01", CheckOut: "2024-03-03",
			UnitServices: model.UnitServices{"2024-03-01": {"secretarial_services": 100}}},
	}
	fiscal := model.FiscalDetails{CompanyName: "Albergue Mª Rosa Molas", TaxID: "G12345678"}

	invoice := BuildInvoice(Group(reservations)[0], fiscal)

	// 120 accommodation + 7 photocopies.
	if !almostEqual(invoice.Subtotal, 127) {
		t.Errorf("expected subtotal 127, got %v", invoice.Subtotal)
	}
	if !almostEqual(invoice.IVA, 127*0.21) {
		t.Errorf("expected IVA %v, got %v", 127*0.21, invoice.IVA)
	}
	if !almostEqual(invoice.Total, 127*1.21) {
		t.Errorf("expected total %v, got %v", 127*1.21, invoice.Total)
	}
	if len(invoice.Lines) != 2 {
		t.Errorf("expected 2 invoice lines, got %d", len(invoice.Lines))
	}
	if invoice.Fiscal.CompanyName != "Albergue Mª Rosa Molas" {
		t.Errorf("fiscal details not carried: %+v", invoice.Fiscal)
	}
}

func TestWithCostMatchesBreakdown(t *testing.T) {
	groups := Group(sampleReservations())
	withCost := WithCost(groups)
	if len(withCost) != len(groups) {
		t.Fatalf("expected %d groups, got %d", len(groups), len(withCost))
	}
	for i, g := range withCost {
		if !almostEqual(g.TotalCost, Breakdown(groups[i]).Total()) {
			t.Errorf("group %s: cost %v does not match breakdown", g.Key(), g.TotalCost)
		}
	}
}
