package model

import "time"

// DateLayout is the calendar-date format used throughout: ISO "YYYY-MM-DD".
// Dates in this format compare correctly as plain strings, which is how all
// check-in/check-out comparisons are done.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns the current calendar date.
func Today() string {
	return time.Now().Format(DateLayout)
}

// AddDays returns the date n days after s, or s unchanged if malformed.
func AddDays(s string, n int) string {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return d.AddDate(0, 0, n).Format(DateLayout)
}

// Nights returns the number of nights in the half-open stay
// [checkIn, checkOut), or 0 if either date is malformed or the range is
// empty or inverted.
func Nights(checkIn, checkOut string) int {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return 0
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// DatesInRange returns every date in the half-open range
// [checkIn, checkOut). Malformed or empty ranges yield nil.
func DatesInRange(checkIn, checkOut string) []string {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return nil
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil || !out.After(in) {
		return nil
	}

	var dates []string
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// DatesInRangeInclusive returns every date in [from, to], for reports that
// take an inclusive range (dining tallies, occupancy calendars).
func DatesInRangeInclusive(from, to string) []string {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil || end.Before(start) {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}
