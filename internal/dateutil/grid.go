package dateutil

import "time"

// MonthGridSize is the fixed cell count of a month grid: six full weeks.
const MonthGridSize = 42

// MonthGrid returns the 42-cell (6x7) grid for the month containing date,
// spanning from the Sunday on or before the month start to the Saturday on
// or after the month end. Full weeks on both edges, always.
func MonthGrid(date time.Time) []time.Time {
	cur := StartOfWeek(StartOfMonth(date))
	grid := make([]time.Time, 0, MonthGridSize)
	for i := 0; i < MonthGridSize; i++ {
		grid = append(grid, cur)
		cur = AddDays(cur, 1)
	}
	return grid
}

// WeekDays returns the 7 dates of the Sunday-start week containing date.
func WeekDays(date time.Time) []time.Time {
	cur := StartOfWeek(date)
	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, cur)
		cur = AddDays(cur, 1)
	}
	return days
}

// HourSlots returns the 24 integer hours 0..23 shared by the day and week
// layouts.
func HourSlots() []int {
	slots := make([]int, 24)
	for i := range slots {
		slots[i] = i
	}
	return slots
}
