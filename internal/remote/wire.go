// Package remote talks to the optional external item source. The engine
// works fully offline; everything here is a best-effort overlay on top of
// the local store.
package remote

import (
	"fmt"
	"time"

	"github.com/selfforge/calendar/internal/domain"
)

// wireLayout is the flat datetime format used by the external API.
const wireLayout = "2006-01-02T15:04:05"

// ItemRecord is the external API's representation of a calendar item:
// snake_case field names and flat local datetimes, one flat struct for both
// kinds.
type ItemRecord struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	Category      string  `json:"category"`
	IsAllDay      bool    `json:"is_all_day"`
	ItemType      string  `json:"item_type"`
	CreatedAt     *string `json:"created_at,omitempty"`
	UpdatedAt     *string `json:"updated_at,omitempty"`

	// Task fields
	Completed    *bool   `json:"completed,omitempty"`
	CompletedAt  *string `json:"completed_at,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	EstimatedMin *int    `json:"estimated_duration,omitempty"`
	ActualMin    *int    `json:"actual_duration,omitempty"`

	// Event fields
	Location  *string  `json:"location,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
}

func toWireTime(t time.Time) string {
	return t.Format(wireLayout)
}

func toWireTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := toWireTime(*t)
	return &s
}

func fromWireTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(wireLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing wire datetime %q: %w", s, err)
	}
	return t, nil
}

func fromWireTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := fromWireTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ToWire converts a domain item to its external representation. The
// transform is total and lossless over the fields both sides share.
func ToWire(it domain.Item) ItemRecord {
	b := it.Base()
	rec := ItemRecord{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		StartDatetime: toWireTime(b.StartDateTime),
		EndDatetime:   toWireTime(b.EndDateTime),
		Category:      b.CategoryID,
		IsAllDay:      b.AllDay,
		ItemType:      string(it.Kind()),
		CreatedAt:     toWireTimePtr(&b.CreatedAt),
		UpdatedAt:     toWireTimePtr(&b.UpdatedAt),
	}

	switch v := it.(type) {
	case *domain.Task:
		completed := v.Completed
		rec.Completed = &completed
		rec.CompletedAt = toWireTimePtr(v.CompletedAt)
		p := string(v.Priority)
		rec.Priority = &p
		rec.EstimatedMin = v.EstimatedMin
		rec.ActualMin = v.ActualMin
	case *domain.Event:
		if v.Location != "" {
			loc := v.Location
			rec.Location = &loc
		}
		rec.Attendees = v.Attendees
	}
	return rec
}

// FromWire converts an external record to a domain item.
func FromWire(rec ItemRecord) (domain.Item, error) {
	start, err := fromWireTime(rec.StartDatetime)
	if err != nil {
		return nil, err
	}
	end, err := fromWireTime(rec.EndDatetime)
	if err != nil {
		return nil, err
	}
	created, err := fromWireTimePtr(rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := fromWireTimePtr(rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	base := domain.ItemBase{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		StartDateTime: start,
		EndDateTime:   end,
		CategoryID:    rec.Category,
		AllDay:        rec.IsAllDay,
	}
	if created != nil {
		base.CreatedAt = *created
	}
	if updated != nil {
		base.UpdatedAt = *updated
	}

	switch domain.ItemKind(rec.ItemType) {
	case domain.KindTask:
		t := &domain.Task{ItemBase: base, Priority: domain.PriorityMedium}
		if rec.Completed != nil {
			t.Completed = *rec.Completed
		}
		completedAt, err := fromWireTimePtr(rec.CompletedAt)
		if err != nil {
			return nil, err
		}
		t.CompletedAt = completedAt
		if rec.Priority != nil && *rec.Priority != "" {
			t.Priority = domain.Priority(*rec.Priority)
		}
		t.EstimatedMin = rec.EstimatedMin
		t.ActualMin = rec.ActualMin
		return t, nil
	case domain.KindEvent:
		e := &domain.Event{ItemBase: base, Attendees: rec.Attendees}
		if rec.Location != nil {
			e.Location = *rec.Location
		}
		return e, nil
	default:
		return nil, fmt.Errorf("item %s: unknown item_type %q", rec.ID, rec.ItemType)
	}
}
