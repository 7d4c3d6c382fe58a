package catalog

import "testing"

func TestUnitCountsMatchTypes(t *testing.T) {
	for _, it := range ItemTypes() {
		got := len(UnitsOf(it.ID))
		if got != it.AvailableUnits {
			t.Errorf("%s: expected %d units, got %d", it.ID, it.AvailableUnits, got)
		}
	}
}

func TestUnitExpansionIsDeterministic(t *testing.T) {
	first := UnitsOf("quad")
	second := UnitsOf("quad")
	if len(first) != len(second) {
		t.Fatalf("expansion changed size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("unit %d differs between expansions: %v vs %v", i, first[i], second[i])
		}
	}

	// Room units must carry real door numbers, not sequential indexes.
	if first[0].ID != "quad_16" {
		t.Errorf("expected first quad unit quad_16, got %s", first[0].ID)
	}
}

func TestUnitIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range Units() {
		if seen[u.ID] {
			t.Errorf("duplicate unit ID %s", u.ID)
		}
		seen[u.ID] = true
	}
}

func TestLookupCoversRoomsAndServices(t *testing.T) {
	room, ok := Lookup("double")
	if !ok || room.Kind != KindRoom {
		t.Errorf("expected double to be a room, got %+v (ok=%v)", room, ok)
	}

	hall, ok := Lookup("small_hall")
	if !ok || hall.Kind != KindService {
		t.Errorf("expected small_hall to be a service, got %+v (ok=%v)", hall, ok)
	}

	if _, ok := Lookup("penthouse"); ok {
		t.Error("expected lookup of unknown type to fail")
	}
}

func TestMealPrices(t *testing.T) {
	if MealPrice("lunch") != 12.00 {
		t.Errorf("expected lunch price 12.00, got %v", MealPrice("lunch"))
	}
	if MealPrice("brunch") != 0 {
		t.Errorf("expected unknown meal price 0, got %v", MealPrice("brunch"))
	}
}
