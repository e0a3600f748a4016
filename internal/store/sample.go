package store

import (
	"time"

	"github.com/selfforge/calendar/internal/dateutil"
	"github.com/selfforge/calendar/internal/domain"
)

// SampleItems builds the starter dataset seeded after a reset: one planning
// task, one focus block and one all-day reminder around the given day.
func SampleItems(now time.Time) []domain.Item {
	day := dateutil.StartOfDay(now)
	est := 60

	task, err := domain.NewTask(domain.ItemDraft{
		Kind:          domain.KindTask,
		Title:         "Plan the week",
		Description:   "Review goals and block time for the important work.",
		StartDateTime: day.Add(9 * time.Hour),
		EndDateTime:   day.Add(9*time.Hour + 30*time.Minute),
		CategoryID:    "work",
		Priority:      domain.PriorityHigh,
		EstimatedMin:  &est,
	}, now)
	if err != nil {
		return nil
	}

	focus, err := domain.NewEvent(domain.ItemDraft{
		Kind:          domain.KindEvent,
		Title:         "Deep work block",
		StartDateTime: day.Add(10 * time.Hour),
		EndDateTime:   day.Add(12 * time.Hour),
		CategoryID:    "deep-work",
	}, now)
	if err != nil {
		return nil
	}

	reminder, err := domain.NewEvent(domain.ItemDraft{
		Kind:          domain.KindEvent,
		Title:         "Getting started with SelfForge",
		Description:   "Add your own tasks and events, or connect an account to sync.",
		StartDateTime: day,
		EndDateTime:   day,
		CategoryID:    "personal",
		AllDay:        true,
	}, now)
	if err != nil {
		return nil
	}

	return []domain.Item{task, focus, reminder}
}
