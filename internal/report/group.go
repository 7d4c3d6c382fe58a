// Package report folds the flat reservation list into per-group summaries,
// cost estimates, invoices and the dashboard/dining/occupancy views. All
// functions are pure folds over their input; malformed or missing nested
// maps are treated as empty, never as errors.
package report

import (
	"sort"

	"github.com/erazemk/albergue/internal/catalog"
	"github.com/erazemk/albergue/internal/model"
)

// Group folds reservations into per-group summaries. The grouping key is
// the group name when present, otherwise the guest name. The first
// reservation of a group is canonical: on conflicting service or dining
// entries for the same date, the value already in the summary wins.
// Groups come back sorted by ascending MinCheckIn, ties broken by key.
func Group(reservations []model.Reservation) []model.GroupedReservation {
	byKey := make(map[string]*model.GroupedReservation)
	var order []string

	for _, res := range reservations {
		key := res.GroupKey()
		group, ok := byKey[key]
		if !ok {
			group = &model.GroupedReservation{
				GuestName:            res.GuestName,
				GroupName:            res.GroupName,
				MinCheckIn:           res.CheckIn,
				MaxCheckOut:          res.CheckOut,
				RoomSummary:          map[string]int{},
				OtherServicesSummary: model.OtherServices{},
				UnitServicesSummary:  model.UnitServices{},
				DiningSummary:        model.DiningMap{},
			}
			byKey[key] = group
			order = append(order, key)
		}

		if res.CheckIn < group.MinCheckIn {
			group.MinCheckIn = res.CheckIn
		}
		if res.CheckOut > group.MaxCheckOut {
			group.MaxCheckOut = res.CheckOut
		}

		group.RoomSummary[res.RoomType]++

		mergeOtherServices(group.OtherServicesSummary, res.OtherServices)
		mergeUnitServices(group.UnitServicesSummary, res.UnitServices)
		mergeDining(group.DiningSummary, res.Dining)

		group.Reservations = append(group.Reservations, res)
	}

	groups := make([]model.GroupedReservation, 0, len(order))
	for _, key := range order {
		group := byKey[key]
		group.TotalGuests = totalGuests(group.RoomSummary)
		groups = append(groups, *group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].MinCheckIn != groups[j].MinCheckIn {
			return groups[i].MinCheckIn < groups[j].MinCheckIn
		}
		return groups[i].Key() < groups[j].Key()
	})
	return groups
}

// totalGuests sums capacity × count over the room-type entries of a room
// summary. Halls and services never contribute to the headcount.
func totalGuests(roomSummary map[string]int) int {
	total := 0
	for typeID, count := range roomSummary {
		it, ok := catalog.Lookup(typeID)
		if !ok || it.Kind != catalog.KindRoom {
			continue
		}
		total += it.Capacity * count
	}
	return total
}

func mergeOtherServices(dst model.OtherServices, src model.OtherServices) {
	for date, services := range src {
		if _, ok := dst[date]; !ok {
			dst[date] = map[string][]model.TimeSlot{}
		}
		for serviceID, slots := range services {
			if _, ok := dst[date][serviceID]; !ok {
				dst[date][serviceID] = slots
			}
		}
	}
}

func mergeUnitServices(dst model.UnitServices, src model.UnitServices) {
	for date, services := range src {
		if _, ok := dst[date]; !ok {
			dst[date] = map[string]int{}
		}
		for serviceID, units := range services {
			if _, ok := dst[date][serviceID]; !ok {
				dst[date][serviceID] = units
			}
		}
	}
}

func mergeDining(dst model.DiningMap, src model.DiningMap) {
	for date, selection := range src {
		if _, ok := dst[date]; !ok {
			dst[date] = selection
		}
	}
}
