// Package query filters and sorts item collections by date, range and
// conflict relation. All functions are pure; input slices are never mutated.
package query

import (
	"sort"
	"time"

	"github.com/selfforge/calendar/internal/dateutil"
	"github.com/selfforge/calendar/internal/domain"
)

// ItemsForDate returns the items visible on the given calendar day. All-day
// items match on their start date only; timed items match every day of
// [StartOfDay(start), EndOfDay(end)], so multi-day items surface on each day
// they span.
func ItemsForDate(items []domain.Item, date time.Time) []domain.Item {
	var out []domain.Item
	for _, it := range items {
		b := it.Base()
		if b.AllDay {
			if dateutil.SameDay(b.StartDateTime, date) {
				out = append(out, it)
			}
			continue
		}
		if !date.Before(dateutil.StartOfDay(b.StartDateTime)) &&
			!date.After(dateutil.EndOfDay(b.EndDateTime)) {
			out = append(out, it)
		}
	}
	return out
}

// ItemsForRange returns items whose start or end falls within [start, end],
// or whose span strictly contains the range.
func ItemsForRange(items []domain.Item, start, end time.Time) []domain.Item {
	var out []domain.Item
	for _, it := range items {
		b := it.Base()
		startsIn := !b.StartDateTime.Before(start) && !b.StartDateTime.After(end)
		endsIn := !b.EndDateTime.Before(start) && !b.EndDateTime.After(end)
		contains := b.StartDateTime.Before(start) && b.EndDateTime.After(end)
		if startsIn || endsIn || contains {
			out = append(out, it)
		}
	}
	return out
}

// SortByStartTime returns a new slice sorted ascending by start time. The
// sort is stable; ties keep their input order, which is all the layout
// engine needs for deterministic columns.
func SortByStartTime(items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Base().StartDateTime.Before(out[j].Base().StartDateTime)
	})
	return out
}

// HasConflict reports whether two distinct items overlap in time. For
// all-day items conflict reduces to sharing a calendar day; otherwise the
// half-open intervals [start, end) must overlap, so an item starting exactly
// when another ends does not conflict.
func HasConflict(a, b domain.Item) bool {
	ab, bb := a.Base(), b.Base()
	if ab.ID == bb.ID {
		return false
	}
	if ab.AllDay || bb.AllDay {
		return dateutil.SameDay(ab.StartDateTime, bb.StartDateTime)
	}
	return ab.StartDateTime.Before(bb.EndDateTime) && ab.EndDateTime.After(bb.StartDateTime)
}
