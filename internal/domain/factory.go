package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemDraft carries caller-supplied fields for item creation. Task-only and
// event-only fields are ignored by the factory for the other kind.
type ItemDraft struct {
	ID            string
	Kind          ItemKind
	Title         string
	Description   string
	StartDateTime time.Time
	EndDateTime   time.Time
	CategoryID    string
	AllDay        bool

	// Task fields
	Priority     Priority
	EstimatedMin *int
	ActualMin    *int

	// Event fields
	Location  string
	Attendees []string
}

func (d ItemDraft) base(now time.Time) ItemBase {
	id := d.ID
	if id == "" {
		id = uuid.New().String()
	}
	return ItemBase{
		ID:            id,
		Title:         d.Title,
		Description:   d.Description,
		StartDateTime: d.StartDateTime,
		EndDateTime:   d.EndDateTime,
		CategoryID:    d.CategoryID,
		AllDay:        d.AllDay,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewTask builds a task from the draft, populating id, timestamps and
// defaults before validating. The input draft is never stored on failure.
func NewTask(d ItemDraft, now time.Time) (*Task, error) {
	t := &Task{
		ItemBase:     d.base(now),
		Completed:    false,
		Priority:     d.Priority,
		EstimatedMin: d.EstimatedMin,
		ActualMin:    d.ActualMin,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if !ValidPriorities[t.Priority] {
		return nil, &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}
	t.NormalizeAllDay()
	if err := validateBase(&t.ItemBase); err != nil {
		return nil, err
	}
	return t, nil
}

// NewEvent builds an event from the draft. Attendee order is preserved and
// duplicates are kept as given.
func NewEvent(d ItemDraft, now time.Time) (*Event, error) {
	e := &Event{
		ItemBase:  d.base(now),
		Location:  d.Location,
		Attendees: d.Attendees,
	}
	e.NormalizeAllDay()
	if err := validateBase(&e.ItemBase); err != nil {
		return nil, err
	}
	return e, nil
}

// NewItem dispatches on the draft kind.
func NewItem(d ItemDraft, now time.Time) (Item, error) {
	switch d.Kind {
	case KindTask:
		return NewTask(d, now)
	case KindEvent:
		return NewEvent(d, now)
	default:
		return nil, &ValidationError{Field: "type", Reason: "must be task or event"}
	}
}
