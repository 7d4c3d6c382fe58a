package booking

import "github.com/erazemk/albergue/internal/catalog"

// Step is one state of the booking wizard.
type Step string

const (
	StepOptions   Step = "options"
	StepDining    Step = "dining"
	StepSchedule  Step = "schedule"
	StepLoading   Step = "loading"
	StepConfirmed Step = "confirmed"
)

// Event drives the wizard forward or backward.
type Event string

const (
	EventNext  Event = "next"  // user continues to the next step
	EventBack  Event = "back"  // user returns to the previous step
	EventSaved Event = "saved" // booking persisted and confirmed
	EventFail  Event = "fail"  // allocation failed, back to selection
	EventReset Event = "reset" // start over with a cleared selection
)

// Totals summarizes the current selection for the skip logic: the dining
// step only makes sense with guests, the schedule step only with halls or
// services selected.
type Totals struct {
	Rooms    int
	Guests   int
	Services int
}

// SelectionTotals derives the wizard totals from a type→count selection.
// Only room capacities contribute to the guest headcount.
func SelectionTotals(selection map[string]int) Totals {
	var t Totals
	for typeID, count := range selection {
		if count <= 0 {
			continue
		}
		it, ok := catalog.Lookup(typeID)
		if !ok {
			continue
		}
		switch it.Kind {
		case catalog.KindRoom:
			t.Rooms += count
			t.Guests += it.Capacity * count
		case catalog.KindService:
			t.Services += count
		}
	}
	return t
}

// Transition is the pure wizard step function. Unknown combinations leave
// the step unchanged; loading is transient and only reacts to the save
// outcome; confirmed is terminal until reset.
func Transition(step Step, event Event, totals Totals) Step {
	switch event {
	case EventReset:
		return StepOptions
	case EventSaved:
		if step == StepLoading {
			return StepConfirmed
		}
	case EventFail:
		if step == StepLoading {
			return StepOptions
		}
	case EventNext:
		switch step {
		case StepOptions:
			if totals.Guests > 0 {
				return StepDining
			}
			if totals.Services > 0 {
				return StepSchedule
			}
			return StepLoading
		case StepDining:
			return StepSchedule
		case StepSchedule:
			return StepLoading
		}
	case EventBack:
		switch step {
		case StepDining:
			return StepOptions
		case StepSchedule:
			if totals.Guests > 0 {
				return StepDining
			}
			return StepOptions
		}
	}
	return step
}
