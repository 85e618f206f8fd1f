package domain

import "time"

// MonthGrid returns the ordered sequence of dates needed to render a
// full-week month grid for ref's month: from the Sunday on or before
// the first of the month through the Saturday on or after the last.
// The result length is always a multiple of 7 (35 or 42 in practice).
// Leading and trailing cells belong to the adjacent months; callers
// classify cells with SameMonth against ref.
func MonthGrid(ref time.Time) []time.Time {
	loc := ref.Location()

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return days
}
