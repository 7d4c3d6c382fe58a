package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/erazemk/albergue/internal/catalog"
	"github.com/erazemk/albergue/internal/model"
)

// IVARate is the Spanish VAT rate applied on invoices.
const IVARate = 0.21

// CostBreakdown separates the independently computed cost components of a
// group. Total is always their sum.
type CostBreakdown struct {
	Accommodation  float64 `json:"accommodation"`
	HourlyServices float64 `json:"hourlyServices"`
	SlotServices   float64 `json:"slotServices"`
	UnitServices   float64 `json:"unitServices"`
	Dining         float64 `json:"dining"`
}

// Total sums the component costs.
func (c CostBreakdown) Total() float64 {
	return c.Accommodation + c.HourlyServices + c.SlotServices + c.UnitServices + c.Dining
}

// Breakdown computes the estimated cost of a group, each component
// independently:
//
//   - accommodation: per reservation of a per-day room type, price × nights
//     with a one-night minimum;
//   - hall slots: per-hour types charge price × duration (non-positive
//     durations discarded), every other priced type charges one full unit
//     price per slot;
//   - unit services: price × units;
//   - dining: meal price × diner count per date and category.
func Breakdown(group model.GroupedReservation) CostBreakdown {
	var b CostBreakdown

	for _, res := range group.Reservations {
		it, ok := catalog.Lookup(res.RoomType)
		if !ok || it.Kind != catalog.KindRoom || it.Price == 0 || it.PriceUnit != catalog.PerDay {
			continue
		}
		nights := model.Nights(res.CheckIn, res.CheckOut)
		if nights < 1 {
			nights = 1
		}
		b.Accommodation += it.Price * float64(nights)
	}

	for _, services := range group.OtherServicesSummary {
		for serviceID, slots := range services {
			it, ok := catalog.Lookup(serviceID)
			if !ok || it.Price == 0 {
				continue
			}
			for _, slot := range slots {
				if it.PriceUnit == catalog.PerHour {
					hours := slotHours(slot)
					if hours > 0 {
						b.HourlyServices += it.Price * hours
					}
				} else {
					// One full unit price per booked slot.
					b.SlotServices += it.Price
				}
			}
		}
	}

	for _, services := range group.UnitServicesSummary {
		for serviceID, units := range services {
			it, ok := catalog.Lookup(serviceID)
			if !ok || it.Price == 0 || units <= 0 {
				continue
			}
			b.UnitServices += it.Price * float64(units)
		}
	}

	for _, selection := range group.DiningSummary {
		b.Dining += catalog.MealPrice("breakfast") * float64(selection.Breakfast)
		b.Dining += catalog.MealPrice("lunch") * float64(selection.Lunch)
		b.Dining += catalog.MealPrice("dinner") * float64(selection.Dinner)
		b.Dining += catalog.MealPrice("morningSnack") * float64(selection.MorningSnack)
		b.Dining += catalog.MealPrice("afternoonSnack") * float64(selection.AfternoonSnack)
	}

	return b
}

// WithCost attaches the estimated total cost to each group.
func WithCost(groups []model.GroupedReservation) []model.GroupedReservationWithCost {
	out := make([]model.GroupedReservationWithCost, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.GroupedReservationWithCost{
			GroupedReservation: g,
			TotalCost:          Breakdown(g).Total(),
		})
	}
	return out
}

// slotHours returns the duration of a time slot in hours, or 0 when the
// slot is malformed or non-positive.
func slotHours(slot model.TimeSlot) float64 {
	start, err := time.Parse("15:04", slot.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", slot.EndTime)
	if err != nil {
		return 0
	}
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return 0
	}
	return hours
}

// InvoiceLine is one billed row of an invoice.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Invoice is the aggregated billing data handed to rendering/printing
// collaborators. The core never formats HTML or PDF.
type Invoice struct {
	Group    model.GroupedReservation `json:"group"`
	Fiscal   model.FiscalDetails      `json:"fiscal"`
	Lines    []InvoiceLine            `json:"lines"`
	Subtotal float64                  `json:"subtotal"`
	IVA      float64                  `json:"iva"`
	Total    float64                  `json:"total"`
}

// BuildInvoice expands a group into invoice line items with subtotal, IVA
// and total.
func BuildInvoice(group model.GroupedReservation, fiscal model.FiscalDetails) Invoice {
	var lines []InvoiceLine

	// Accommodation: one line per room type, nights from the group span.
	nights := model.Nights(group.MinCheckIn, group.MaxCheckOut)
	if nights < 1 {
		nights = 1
	}
	for _, it := range catalog.RoomTypes {
		count := group.RoomSummary[it.ID]
		if count == 0 || it.Price == 0 {
			continue
		}
		noun := "noches"
		if nights == 1 {
			noun = "noche"
		}
		lines = append(lines, InvoiceLine{
			Description: fmt.Sprintf("%s (%d %s)", it.Name, nights, noun),
			Quantity:    float64(count),
			UnitPrice:   it.Price * float64(nights),
			Total:       it.Price * float64(nights) * float64(count),
		})
	}

	// Hall and service slots, by date.
	for _, date := range sortedKeys(group.OtherServicesSummary) {
		for serviceID, slots := range group.OtherServicesSummary[date] {
			it, ok := catalog.Lookup(serviceID)
			if !ok || it.Price == 0 {
				continue
			}
			for _, slot := range slots {
				line := InvoiceLine{
					Description: fmt.Sprintf("%s (%s)", it.Name, date),
					Quantity:    1,
					UnitPrice:   it.Price,
				}
				if it.PriceUnit == catalog.PerHour {
					hours := slotHours(slot)
					if hours <= 0 {
						continue
					}
					line.Quantity = hours
					line.Description = fmt.Sprintf("%s (%s) - %s a %s", it.Name, date, slot.StartTime, slot.EndTime)
				}
				line.Total = line.UnitPrice * line.Quantity
				lines = append(lines, line)
			}
		}
	}

	// Unit services, by date.
	for _, date := range sortedKeys(group.UnitServicesSummary) {
		for serviceID, units := range group.UnitServicesSummary[date] {
			it, ok := catalog.Lookup(serviceID)
			if !ok || it.Price == 0 || units <= 0 {
				continue
			}
			lines = append(lines, InvoiceLine{
				Description: fmt.Sprintf("%s (%s)", it.Name, date),
				Quantity:    float64(units),
				UnitPrice:   it.Price,
				Total:       it.Price * float64(units),
			})
		}
	}

	// Dining, by date and meal category.
	for _, date := range sortedKeys(group.DiningSummary) {
		selection := group.DiningSummary[date]
		for _, meal := range catalog.MealOptions {
			count := selection.Count(meal.ID)
			if count == 0 {
				continue
			}
			lines = append(lines, InvoiceLine{
				Description: fmt.Sprintf("%s (%s)", meal.Label, date),
				Quantity:    float64(count),
				UnitPrice:   meal.Price,
				Total:       meal.Price * float64(count),
			})
		}
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.Total
	}
	iva := subtotal * IVARate

	return Invoice{
		Group:    group,
		Fiscal:   fiscal,
		Lines:    lines,
		Subtotal: subtotal,
		IVA:      iva,
		Total:    subtotal + iva,
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
