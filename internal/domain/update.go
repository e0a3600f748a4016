package domain

import "time"

// Patch is a partial update; nil fields are left unchanged. Completion state
// is deliberately absent: CompleteTask and UncompleteTask are the only
// writers of Completed/CompletedAt.
type Patch struct {
	Title         *string
	Description   *string
	StartDateTime *time.Time
	EndDateTime   *time.Time
	CategoryID    *string
	AllDay        *bool

	// Task fields
	Priority     *Priority
	EstimatedMin *int
	ActualMin    *int

	// Event fields
	Location  *string
	Attendees []string
}

// UpdateItem merges patch over item and refreshes UpdatedAt. The input is
// never mutated; the collection is shared by reference across the query,
// layout and persistence layers, so every update is copy-on-write.
func UpdateItem(item Item, patch Patch, now time.Time) (Item, error) {
	out := item.Clone()
	b := out.Base()

	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.StartDateTime != nil {
		b.StartDateTime = *patch.StartDateTime
	}
	if patch.EndDateTime != nil {
		b.EndDateTime = *patch.EndDateTime
	}
	if patch.CategoryID != nil {
		b.CategoryID = *patch.CategoryID
	}
	if patch.AllDay != nil {
		b.AllDay = *patch.AllDay
	}

	switch v := out.(type) {
	case *Task:
		if patch.Priority != nil {
			if !ValidPriorities[*patch.Priority] {
				return nil, &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
			}
			v.Priority = *patch.Priority
		}
		// Pointer values are re-allocated so the item never shares
		// mutable state with the caller's patch.
		if patch.EstimatedMin != nil {
			est := *patch.EstimatedMin
			v.EstimatedMin = &est
		}
		if patch.ActualMin != nil {
			act := *patch.ActualMin
			v.ActualMin = &act
		}
	case *Event:
		if patch.Location != nil {
			v.Location = *patch.Location
		}
		if patch.Attendees != nil {
			v.Attendees = make([]string, len(patch.Attendees))
			copy(v.Attendees, patch.Attendees)
		}
	}

	b.NormalizeAllDay()
	if err := validateBase(b); err != nil {
		return nil, err
	}
	b.UpdatedAt = now
	return out, nil
}
