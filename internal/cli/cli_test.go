package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfforge/calendar/internal/category"
	"github.com/selfforge/calendar/internal/domain"
	"github.com/selfforge/calendar/internal/kv"
	"github.com/selfforge/calendar/internal/service"
	"github.com/selfforge/calendar/internal/store"
)

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)

func testApp(t *testing.T) *App {
	t.Helper()
	backend := kv.NewMem()
	clock := func() time.Time { return testNow }
	reg := category.NewRegistry(backend, clock)
	items := store.NewItemStore(backend, reg, "user-1", clock, nil)
	svc := service.NewCalendarService(items, reg, nil, clock, nil)
	require.NoError(t, svc.Load())
	return &App{Calendar: svc}
}

func execute(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	root.SetArgs(args)
	return root.Execute()
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), d)

	_, err = parseDay("10/03/2025")
	assert.Error(t, err)
}

func TestParseInstant(t *testing.T) {
	d, err := parseInstant("2025-03-10 14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local), d)

	_, err = parseInstant("2025-03-10")
	assert.Error(t, err)
}

func TestItemAddTask_CreatesTask(t *testing.T) {
	app := testApp(t)

	err := execute(t, app, "item", "add-task",
		"--title", "Write report",
		"--start", "2025-03-11 09:00",
		"--end", "2025-03-11 10:30",
		"--priority", "high",
		"--estimate", "90")
	require.NoError(t, err)

	items := app.Calendar.ItemsForDate(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local))
	require.Len(t, items, 1)
	task, ok := items[0].(*domain.Task)
	require.True(t, ok)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	require.NotNil(t, task.EstimatedMin)
	assert.Equal(t, 90, *task.EstimatedMin)
}

func TestItemAddTask_RejectsBadPriority(t *testing.T) {
	app := testApp(t)

	err := execute(t, app, "item", "add-task",
		"--title", "Bad",
		"--start", "2025-03-11 09:00",
		"--priority", "urgent")
	assert.Error(t, err)
	assert.Empty(t, app.Calendar.ItemsForDate(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)))
}

func TestItemAddEvent_CreatesEvent(t *testing.T) {
	app := testApp(t)

	err := execute(t, app, "item", "add-event",
		"--title", "Standup",
		"--start", "2025-03-11 10:00",
		"--end", "2025-03-11 10:15",
		"--category", "meeting",
		"--location", "Room 4",
		"--attendee", "ana",
		"--attendee", "bo")
	require.NoError(t, err)

	items := app.Calendar.ItemsForDate(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local))
	require.Len(t, items, 1)
	event, ok := items[0].(*domain.Event)
	require.True(t, ok)
	assert.Equal(t, "Room 4", event.Location)
	assert.Equal(t, []string{"ana", "bo"}, event.Attendees)
}

func TestItemComplete_TogglesByPrefix(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "item", "add-task",
		"--title", "Toggle me",
		"--start", "2025-03-11 09:00",
		"--end", "2025-03-11 09:30"))

	id := app.Calendar.Items()[0].Base().ID
	require.NoError(t, execute(t, app, "item", "complete", id[:8]))

	task := app.Calendar.Items()[0].(*domain.Task)
	assert.True(t, task.Completed)
}

func TestItemDelete_RemovesItem(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "item", "add-task",
		"--title", "Doomed",
		"--start", "2025-03-11 09:00",
		"--end", "2025-03-11 09:30"))

	id := app.Calendar.Items()[0].Base().ID
	require.NoError(t, execute(t, app, "item", "delete", id))
	assert.Empty(t, app.Calendar.Items())
}

func TestItemEdit_PatchesFields(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "item", "add-task",
		"--title", "Draft",
		"--start", "2025-03-11 09:00",
		"--end", "2025-03-11 09:30"))

	id := app.Calendar.Items()[0].Base().ID
	require.NoError(t, execute(t, app, "item", "edit", id,
		"--title", "Final",
		"--priority", "low"))

	task := app.Calendar.Items()[0].(*domain.Task)
	assert.Equal(t, "Final", task.Title)
	assert.Equal(t, domain.PriorityLow, task.Priority)
}

func TestItemEdit_InvalidEndRejected(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "item", "add-task",
		"--title", "Keep",
		"--start", "2025-03-11 09:00",
		"--end", "2025-03-11 09:30"))

	id := app.Calendar.Items()[0].Base().ID
	err := execute(t, app, "item", "edit", id, "--end", "2025-03-11 08:00")
	assert.Error(t, err)

	task := app.Calendar.Items()[0].(*domain.Task)
	assert.Equal(t, "Keep", task.Title)
	assert.Equal(t, time.Date(2025, 3, 11, 9, 30, 0, 0, time.Local), task.EndDateTime)
}

func TestResolveItemID(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "item", "add-task",
		"--title", "One",
		"--start", "2025-03-11 09:00",
		"--end", "2025-03-11 09:30"))

	id := app.Calendar.Items()[0].Base().ID

	got, err := resolveItemID(app, id)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = resolveItemID(app, id[:6])
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = resolveItemID(app, "nope")
	assert.Error(t, err)
}

func TestCategoryAddAndDelete(t *testing.T) {
	app := testApp(t)

	require.NoError(t, execute(t, app, "category", "add", "Side Project"))
	c, ok := app.Calendar.Categories().FindByLabel("Side Project")
	require.True(t, ok)
	assert.Equal(t, "side-project", c.ID)

	require.NoError(t, execute(t, app, "category", "delete", "side-project"))
	_, ok = app.Calendar.Categories().FindByLabel("Side Project")
	assert.False(t, ok)
}

func TestCategoryDelete_DefaultFails(t *testing.T) {
	app := testApp(t)
	err := execute(t, app, "category", "delete", "work")
	assert.ErrorIs(t, err, category.ErrDefaultImmutable)
}

func TestCategoryRename(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "category", "add", "Old Name"))
	require.NoError(t, execute(t, app, "category", "rename", "old-name", "New Name"))

	c := app.Calendar.Categories().Resolve("old-name")
	assert.Equal(t, "New Name", c.Label)
}

func TestViewCmd_UnknownView(t *testing.T) {
	app := testApp(t)
	err := execute(t, app, "view", "quarter")
	assert.Error(t, err)
}

func TestViewCmd_RendersWithoutItems(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "view", "month", "--date", "2025-03-01"))
	require.NoError(t, execute(t, app, "view", "week", "--date", "2025-03-10"))
	require.NoError(t, execute(t, app, "view", "day", "--date", "2025-03-10"))
}

func TestResetData_ReseedsSamples(t *testing.T) {
	app := testApp(t)
	require.NoError(t, execute(t, app, "reset-data", "--force"))
	assert.NotEmpty(t, app.Calendar.Items())
}

func TestFormatItemLine(t *testing.T) {
	app := testApp(t)
	reg := app.Calendar.Categories()

	task := &domain.Task{
		ItemBase: domain.ItemBase{
			ID:            "abcdef123456",
			Title:         "Ship it",
			StartDateTime: testNow,
			EndDateTime:   testNow.Add(time.Hour),
			CategoryID:    "work",
		},
		Completed: true,
		Priority:  domain.PriorityHigh,
	}
	line := formatItemLine(task, reg)
	assert.Contains(t, line, "[x]")
	assert.Contains(t, line, "Ship it")
	assert.Contains(t, line, "(high)")
	assert.Contains(t, line, "abcdef12")
	assert.Contains(t, line, "#Work")
}
