// Package dateutil provides the pure calendar-math helpers used by the query
// engine and the grid views. All functions are side-effect free and operate
// on local wall-clock time.
package dateutil

import "time"

// StartOfDay returns midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the day containing t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t. Grid generation
// uses Sunday-start weeks.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t.AddDate(0, 0, -int(t.Weekday())))
}

// EndOfWeek returns 23:59:59 of the Saturday on or after t.
func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(t.AddDate(0, 0, int(time.Saturday-t.Weekday())))
}

// StartOfWeekMonday returns midnight of the Monday on or before t. Weekly
// report aggregation uses Monday-start weeks; this is an independent policy
// from StartOfWeek and the two must not be unified.
func StartOfWeekMonday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t.AddDate(0, 0, -offset))
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns 23:59:59 of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return EndOfDay(StartOfMonth(t).AddDate(0, 1, -1))
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddWeeks shifts t by n weeks.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n*7)
}

// AddMonths shifts t by n months, clamping an overflowed day-of-month to the
// last valid day of the target month (Jan 31 + 1 month lands on the last day
// of February instead of rolling into March).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	h, min, s := t.Clock()
	first := time.Date(y, m+time.Month(n), 1, h, min, s, t.Nanosecond(), t.Location())
	last := daysIn(first.Year(), first.Month())
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, h, min, s, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
