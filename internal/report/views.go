package report

import (
	"sort"

	"github.com/erazemk/albergue/internal/catalog"
	"github.com/erazemk/albergue/internal/model"
)

// DashboardStats is the front-page summary for one day.
type DashboardStats struct {
	Date           string                     `json:"date"`
	GuestsToday    int                        `json:"guestsToday"`
	OccupiedRooms  int                        `json:"occupiedRooms"`
	TotalRooms     int                        `json:"totalRooms"`
	OccupancyRate  int                        `json:"occupancyRate"`
	CheckInsToday  int                        `json:"checkInsToday"`
	CheckOutsToday int                        `json:"checkOutsToday"`
	DiningToday    model.DiningSelection      `json:"diningToday"`
	Upcoming       []model.GroupedReservation `json:"upcoming"`
}

// upcomingLimit caps the dashboard's upcoming-groups list.
const upcomingLimit = 5

// Dashboard computes the day's stats from the reservation list.
func Dashboard(reservations []model.Reservation, today string) DashboardStats {
	stats := DashboardStats{Date: today, TotalRooms: catalog.TotalRoomUnits()}

	occupied := map[string]bool{}
	checkIns := map[string]bool{}
	checkOuts := map[string]bool{}

	for _, res := range reservations {
		it, ok := catalog.Lookup(res.RoomType)
		if !ok {
			continue
		}

		if res.CheckIn <= today && res.CheckOut > today && it.Kind == catalog.KindRoom {
			stats.GuestsToday += it.Capacity
			occupied[res.RoomID] = true
		}
		if res.CheckIn == today {
			checkIns[res.GuestName] = true
		}
		if res.CheckOut == today {
			checkOuts[res.GuestName] = true
		}
	}

	stats.OccupiedRooms = len(occupied)
	stats.CheckInsToday = len(checkIns)
	stats.CheckOutsToday = len(checkOuts)
	if stats.TotalRooms > 0 {
		stats.OccupancyRate = stats.OccupiedRooms * 100 / stats.TotalRooms
	}

	// Dining counts come from the grouped view so that sibling occupancy
	// records of one booking are not double-counted.
	for _, group := range Group(reservations) {
		if selection, ok := group.DiningSummary[today]; ok {
			stats.DiningToday = stats.DiningToday.Add(selection)
		}
		if group.MinCheckIn >= today && len(stats.Upcoming) < upcomingLimit {
			stats.Upcoming = append(stats.Upcoming, group)
		}
	}

	return stats
}

// DiningDay is the dining-hall tally for one date.
type DiningDay struct {
	Date   string                `json:"date"`
	Totals model.DiningSelection `json:"totals"`
}

// DiningTotals tallies diners per meal category for every date in the
// inclusive range [from, to]. Dates with no diners are included so the
// kitchen sees the full picture.
func DiningTotals(reservations []model.Reservation, from, to string) []DiningDay {
	groups := Group(reservations)

	var days []DiningDay
	for _, date := range model.DatesInRangeInclusive(from, to) {
		day := DiningDay{Date: date}
		for _, group := range groups {
			if selection, ok := group.DiningSummary[date]; ok {
				day.Totals = day.Totals.Add(selection)
			}
		}
		days = append(days, day)
	}
	return days
}

// UnitOccupancy says who holds one unit on one date.
type UnitOccupancy struct {
	UnitID    string `json:"unitId"`
	ItemType  string `json:"itemType"`
	GuestName string `json:"guestName"`
}

// OccupancyDay lists the occupied units for one date.
type OccupancyDay struct {
	Date     string          `json:"date"`
	Occupied []UnitOccupancy `json:"occupied"`
}

// Occupancy builds the room-occupancy-by-day data for calendar views over
// the inclusive range [from, to]. A unit is occupied on a date when the
// date falls inside the half-open stay interval.
func Occupancy(reservations []model.Reservation, from, to string) []OccupancyDay {
	var days []OccupancyDay
	for _, date := range model.DatesInRangeInclusive(from, to) {
		day := OccupancyDay{Date: date}
		for _, res := range reservations {
			if res.CheckIn <= date && date < res.CheckOut {
				day.Occupied = append(day.Occupied, UnitOccupancy{
					UnitID:    res.RoomID,
					ItemType:  res.RoomType,
					GuestName: res.GuestName,
				})
			}
		}
		days = append(days, day)
	}
	return days
}

// ServiceBookingRow is one flattened hall/service usage entry, priced.
type ServiceBookingRow struct {
	GuestName   string  `json:"guestName"`
	Date        string  `json:"date"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	SlotIndex   int     `json:"slotIndex"`
	Units       int     `json:"units,omitempty"`
	Cost        float64 `json:"cost"`
}

// ServiceBookings flattens every hall slot and unit-service entry across
// all groups into date-sorted rows with their individual cost, plus the
// grand total.
func ServiceBookings(reservations []model.Reservation) ([]ServiceBookingRow, float64) {
	var rows []ServiceBookingRow

	for _, group := range Group(reservations) {
		for _, date := range sortedKeys(group.OtherServicesSummary) {
			for serviceID, slots := range group.OtherServicesSummary[date] {
				it, ok := catalog.Lookup(serviceID)
				if !ok {
					continue
				}
				for i, slot := range slots {
					row := ServiceBookingRow{
						GuestName:   group.GuestName,
						Date:        date,
						ServiceID:   serviceID,
						ServiceName: it.Name,
						StartTime:   slot.StartTime,
						EndTime:     slot.EndTime,
						SlotIndex:   i,
					}
					if it.PriceUnit == catalog.PerHour {
						row.Cost = it.Price * slotHours(slot)
					} else {
						row.Cost = it.Price
					}
					rows = append(rows, row)
				}
			}
		}

		for _, date := range sortedKeys(group.UnitServicesSummary) {
			for serviceID, units := range group.UnitServicesSummary[date] {
				if units <= 0 {
					continue
				}
				it, ok := catalog.Lookup(serviceID)
				if !ok {
					continue
				}
				rows = append(rows, ServiceBookingRow{
					GuestName:   group.GuestName,
					Date:        date,
					ServiceID:   serviceID,
					ServiceName: it.Name,
					Units:       units,
					Cost:        it.Price * float64(units),
				})
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].GuestName < rows[j].GuestName
	})

	var grandTotal float64
	for _, row := range rows {
		grandTotal += row.Cost
	}
	return rows, grandTotal
}
