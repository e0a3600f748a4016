package domain

import "time"

// ItemBase holds the fields shared by every schedulable item.
// Times are local wall clock; there is no timezone conversion anywhere
// in the engine.
type ItemBase struct {
	ID            string
	Title         string
	Description   string
	StartDateTime time.Time
	EndDateTime   time.Time
	CategoryID    string
	AllDay        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item is the closed union over Task and Event. Consumers switch on the
// concrete type (or Kind) and the unexported marker keeps third packages
// from adding variants.
type Item interface {
	Base() *ItemBase
	Kind() ItemKind
	Clone() Item
	is()
}

type Task struct {
	ItemBase
	Completed    bool
	CompletedAt  *time.Time
	Priority     Priority
	EstimatedMin *int
	ActualMin    *int
}

type Event struct {
	ItemBase
	Location  string
	Attendees []string
}

func (t *Task) Base() *ItemBase { return &t.ItemBase }
func (t *Task) Kind() ItemKind  { return KindTask }
func (t *Task) is()             {}

// Clone returns a deep copy; pointer fields are re-allocated so the copy
// shares no mutable state with the original.
func (t *Task) Clone() Item {
	c := *t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	if t.EstimatedMin != nil {
		v := *t.EstimatedMin
		c.EstimatedMin = &v
	}
	if t.ActualMin != nil {
		v := *t.ActualMin
		c.ActualMin = &v
	}
	return &c
}

func (e *Event) Base() *ItemBase { return &e.ItemBase }
func (e *Event) Kind() ItemKind  { return KindEvent }
func (e *Event) is()             {}

func (e *Event) Clone() Item {
	c := *e
	if e.Attendees != nil {
		c.Attendees = make([]string, len(e.Attendees))
		copy(c.Attendees, e.Attendees)
	}
	return &c
}

// NormalizeAllDay snaps the start/end pair to day boundaries
// (00:00:00 to 23:59:59) when AllDay is set.
func (b *ItemBase) NormalizeAllDay() {
	if !b.AllDay {
		return
	}
	loc := b.StartDateTime.Location()
	y, m, d := b.StartDateTime.Date()
	b.StartDateTime = time.Date(y, m, d, 0, 0, 0, 0, loc)
	if !b.EndDateTime.IsZero() && !b.EndDateTime.Before(b.StartDateTime) {
		y, m, d = b.EndDateTime.Date()
	}
	b.EndDateTime = time.Date(y, m, d, 23, 59, 59, 0, loc)
}
