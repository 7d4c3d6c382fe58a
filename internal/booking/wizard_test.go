package booking

import "testing"

func TestTransitionSkipLogic(t *testing.T) {
	roomsAndHalls := Totals{Rooms: 1, Guests: 2, Services: 1}
	hallsOnly := Totals{Services: 1}
	var empty Totals

	cases := []struct {
		name   string
		step   Step
		event  Event
		totals Totals
		want   Step
	}{
		{"options with guests goes to dining", StepOptions, EventNext, roomsAndHalls, StepDining},
		{"options with only services skips dining", StepOptions, EventNext, hallsOnly, StepSchedule},
		{"options with nothing optional saves directly", StepOptions, EventNext, empty, StepLoading},
		{"dining always continues to schedule", StepDining, EventNext, roomsAndHalls, StepSchedule},
		{"schedule continues to loading", StepSchedule, EventNext, roomsAndHalls, StepLoading},
		{"schedule back with guests returns to dining", StepSchedule, EventBack, roomsAndHalls, StepDining},
		{"schedule back without guests skips dining", StepSchedule, EventBack, hallsOnly, StepOptions},
		{"dining back returns to options", StepDining, EventBack, roomsAndHalls, StepOptions},
		{"loading resolves to confirmed on save", StepLoading, EventSaved, roomsAndHalls, StepConfirmed},
		{"loading returns to options on failure", StepLoading, EventFail, roomsAndHalls, StepOptions},
		{"confirmed is terminal until reset", StepConfirmed, EventNext, roomsAndHalls, StepConfirmed},
		{"reset restarts from anywhere", StepConfirmed, EventReset, empty, StepOptions},
		{"loading ignores user navigation", StepLoading, EventNext, roomsAndHalls, StepLoading},
	}

	for _, c := range cases {
		if got := Transition(c.step, c.event, c.totals); got != c.want {
			t.Errorf("%s: Transition(%s, %s) = %s, want %s", c.name, c.step, c.event, got, c.want)
		}
	}
}

func TestSelectionTotals(t *testing.T) {
	totals := SelectionTotals(map[string]int{
		"quad":       2, // capacity 4
		"single":     1, // capacity 1
		"small_hall": 1,
		"unknown":    5,
		"double":     0,
	})

	if totals.Rooms != 3 {
		t.Errorf("expected 3 rooms, got %d", totals.Rooms)
	}
	if totals.Guests != 9 {
		t.Errorf("expected 9 guests, got %d", totals.Guests)
	}
	if totals.Services != 1 {
		t.Errorf("expected 1 service, got %d", totals.Services)
	}
}
