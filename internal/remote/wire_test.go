package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfforge/calendar/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

func TestToWire_Task(t *testing.T) {
	est := 45
	task, err := domain.NewTask(domain.ItemDraft{
		Kind:          domain.KindTask,
		Title:         "Write report",
		StartDateTime: time.Date(2025, 6, 16, 10, 0, 0, 0, time.Local),
		EndDateTime:   time.Date(2025, 6, 16, 11, 30, 0, 0, time.Local),
		CategoryID:    "work",
		Priority:      domain.PriorityHigh,
		EstimatedMin:  &est,
	}, testNow)
	require.NoError(t, err)
	done := domain.CompleteTask(task, testNow)

	rec := ToWire(done)
	assert.Equal(t, "task", rec.ItemType)
	assert.Equal(t, "2025-06-16T10:00:00", rec.StartDatetime)
	assert.Equal(t, "2025-06-16T11:30:00", rec.EndDatetime)
	require.NotNil(t, rec.Completed)
	assert.True(t, *rec.Completed)
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, "2025-06-15T10:00:00", *rec.CompletedAt)
	require.NotNil(t, rec.Priority)
	assert.Equal(t, "high", *rec.Priority)
	require.NotNil(t, rec.EstimatedMin)
	assert.Equal(t, 45, *rec.EstimatedMin)
}

func TestWire_RoundTripTask(t *testing.T) {
	est := 45
	task, err := domain.NewTask(domain.ItemDraft{
		Kind:          domain.KindTask,
		Title:         "Write report",
		Description:   "quarterly numbers",
		StartDateTime: time.Date(2025, 6, 16, 10, 0, 0, 0, time.Local),
		EndDateTime:   time.Date(2025, 6, 16, 11, 30, 0, 0, time.Local),
		CategoryID:    "work",
		EstimatedMin:  &est,
	}, testNow)
	require.NoError(t, err)

	back, err := FromWire(ToWire(task))
	require.NoError(t, err)
	got := back.(*domain.Task)

	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Description, got.Description)
	assert.True(t, got.StartDateTime.Equal(task.StartDateTime))
	assert.True(t, got.EndDateTime.Equal(task.EndDateTime))
	assert.Equal(t, task.CategoryID, got.CategoryID)
	assert.Equal(t, task.Priority, got.Priority)
	assert.Equal(t, *task.EstimatedMin, *got.EstimatedMin)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestWire_RoundTripEvent(t *testing.T) {
	ev, err := domain.NewEvent(domain.ItemDraft{
		Kind:          domain.KindEvent,
		Title:         "Standup",
		StartDateTime: time.Date(2025, 6, 16, 9, 0, 0, 0, time.Local),
		EndDateTime:   time.Date(2025, 6, 16, 9, 15, 0, 0, time.Local),
		CategoryID:    "meeting",
		Location:      "Room 2",
		Attendees:     []string{"ana", "ben", "ana"},
	}, testNow)
	require.NoError(t, err)

	back, err := FromWire(ToWire(ev))
	require.NoError(t, err)
	got := back.(*domain.Event)

	assert.Equal(t, "Room 2", got.Location)
	assert.Equal(t, []string{"ana", "ben", "ana"}, got.Attendees, "duplicates preserved in order")
	assert.True(t, got.StartDateTime.Equal(ev.StartDateTime))
}

func TestFromWire_MissingOptionalFields(t *testing.T) {
	rec := ItemRecord{
		ID:            "r-1",
		Title:         "Bare task",
		StartDatetime: "2025-06-16T10:00:00",
		EndDatetime:   "2025-06-16T11:00:00",
		Category:      "work",
		ItemType:      "task",
	}
	it, err := FromWire(rec)
	require.NoError(t, err)
	task := it.(*domain.Task)
	assert.Equal(t, domain.PriorityMedium, task.Priority, "priority defaults")
	assert.False(t, task.Completed)
	assert.True(t, task.CreatedAt.IsZero())
}

func TestFromWire_UnknownType(t *testing.T) {
	rec := ItemRecord{ID: "r-2", ItemType: "note",
		StartDatetime: "2025-06-16T10:00:00", EndDatetime: "2025-06-16T11:00:00"}
	_, err := FromWire(rec)
	assert.Error(t, err)
}

func TestFromWire_BadDatetime(t *testing.T) {
	rec := ItemRecord{ID: "r-3", ItemType: "event",
		StartDatetime: "16/06/2025", EndDatetime: "2025-06-16T11:00:00"}
	_, err := FromWire(rec)
	assert.Error(t, err)
}
