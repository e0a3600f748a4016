// Package layout assigns temporally-overlapping items to visual columns for
// day and week rendering. Pixel geometry is the caller's concern; the
// contract ends at (item, column, total columns).
package layout

import (
	"time"

	"github.com/selfforge/calendar/internal/dateutil"
	"github.com/selfforge/calendar/internal/domain"
	"github.com/selfforge/calendar/internal/query"
)

// Placement locates one timed item in the day's column layout.
type Placement struct {
	Item         domain.Item
	Column       int
	TotalColumns int
}

// DayLayout is the layout for a single day: timed items in columns plus the
// all-day lane rendered above the hourly grid.
type DayLayout struct {
	Date       time.Time
	Placements []Placement
	AllDay     []domain.Item
}

// AssignColumns packs timed items into columns greedily: each item, taken in
// start-time order, goes to the first column whose occupants it does not
// conflict with. Not minimum-column optimal, but deterministic and stable
// under append: the UI re-derives columns on every render and items must
// not jump between columns when unrelated items are added elsewhere.
func AssignColumns(items []domain.Item) []Placement {
	sorted := query.SortByStartTime(items)

	var columns [][]domain.Item
	column := make(map[string]int, len(sorted))

	for _, it := range sorted {
		placed := false
		for ci, occupants := range columns {
			if fits(it, occupants) {
				columns[ci] = append(occupants, it)
				column[it.Base().ID] = ci
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []domain.Item{it})
			column[it.Base().ID] = len(columns) - 1
		}
	}

	placements := make([]Placement, 0, len(sorted))
	for _, it := range sorted {
		placements = append(placements, Placement{
			Item:         it,
			Column:       column[it.Base().ID],
			TotalColumns: len(columns),
		})
	}
	return placements
}

func fits(it domain.Item, occupants []domain.Item) bool {
	for _, o := range occupants {
		if query.HasConflict(it, o) {
			return false
		}
	}
	return true
}

// LayoutDay builds the layout for one day: all-day items go to the header
// lane, everything else through column assignment.
func LayoutDay(items []domain.Item, date time.Time) DayLayout {
	day := query.ItemsForDate(items, date)

	var timed, header []domain.Item
	for _, it := range day {
		if it.Base().AllDay {
			header = append(header, it)
		} else {
			timed = append(timed, it)
		}
	}

	return DayLayout{
		Date:       date,
		Placements: AssignColumns(timed),
		AllDay:     header,
	}
}

// LayoutWeek builds per-day layouts for the Sunday-start week containing
// date. Columns are computed independently per day.
func LayoutWeek(items []domain.Item, date time.Time) []DayLayout {
	days := dateutil.WeekDays(date)
	out := make([]DayLayout, 0, len(days))
	for _, d := range days {
		out = append(out, LayoutDay(items, d))
	}
	return out
}
