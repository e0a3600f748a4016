package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfforge/calendar/internal/category"
	"github.com/selfforge/calendar/internal/domain"
	"github.com/selfforge/calendar/internal/kv"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

func testClock() time.Time { return testNow }

type fixture struct {
	kv    *kv.Mem
	reg   *category.Registry
	items *ItemStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := kv.NewMem()
	reg := category.NewRegistry(mem, testClock)
	_, err := reg.Load()
	require.NoError(t, err)
	return &fixture{
		kv:    mem,
		reg:   reg,
		items: NewItemStore(mem, reg, "user-1", testClock, nil),
	}
}

func testTask(t *testing.T, title string) domain.Item {
	t.Helper()
	est := 25
	task, err := domain.NewTask(domain.ItemDraft{
		Kind:          domain.KindTask,
		Title:         title,
		StartDateTime: testNow.Add(time.Hour),
		EndDateTime:   testNow.Add(2 * time.Hour),
		CategoryID:    "work",
		EstimatedMin:  &est,
	}, testNow)
	require.NoError(t, err)
	return task
}

func testEvent(t *testing.T, title string) domain.Item {
	t.Helper()
	ev, err := domain.NewEvent(domain.ItemDraft{
		Kind:          domain.KindEvent,
		Title:         title,
		StartDateTime: testNow.Add(3 * time.Hour),
		EndDateTime:   testNow.Add(4 * time.Hour),
		CategoryID:    "meeting",
		Location:      "Room 2",
		Attendees:     []string{"ana", "ben"},
	}, testNow)
	require.NoError(t, err)
	return ev
}

func TestLoad_EmptyStore(t *testing.T) {
	f := newFixture(t)
	items, err := f.items.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	f := newFixture(t)
	task := testTask(t, "Write report")
	done := domain.CompleteTask(task.(*domain.Task), testNow)
	ev := testEvent(t, "Standup")

	require.NoError(t, f.items.Save([]domain.Item{done, ev}))
	got, err := f.items.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)

	gt := got[0].(*domain.Task)
	assert.Equal(t, done.ID, gt.ID)
	assert.Equal(t, "Write report", gt.Title)
	assert.True(t, gt.Completed)
	require.NotNil(t, gt.CompletedAt)
	assert.True(t, gt.CompletedAt.Equal(testNow), "instants compare by instant")
	assert.True(t, gt.StartDateTime.Equal(done.StartDateTime))
	require.NotNil(t, gt.EstimatedMin)
	assert.Equal(t, 25, *gt.EstimatedMin)
	assert.Equal(t, domain.PriorityMedium, gt.Priority)

	ge := got[1].(*domain.Event)
	assert.Equal(t, "Room 2", ge.Location)
	assert.Equal(t, []string{"ana", "ben"}, ge.Attendees)
}

func TestSaveLoad_PreservesSubSecondInstants(t *testing.T) {
	f := newFixture(t)
	stamp := time.Date(2025, 6, 15, 10, 0, 0, 123456789, time.Local)

	task, err := domain.NewTask(domain.ItemDraft{
		Kind:          domain.KindTask,
		Title:         "Precise",
		StartDateTime: stamp,
		EndDateTime:   stamp.Add(time.Hour),
		CategoryID:    "work",
	}, stamp)
	require.NoError(t, err)
	done := domain.CompleteTask(task, stamp)

	require.NoError(t, f.items.Save([]domain.Item{done}))
	got, err := f.items.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)

	gt := got[0].(*domain.Task)
	assert.True(t, gt.StartDateTime.Equal(stamp))
	assert.True(t, gt.CreatedAt.Equal(stamp), "CreatedAt keeps nanosecond precision")
	assert.True(t, gt.UpdatedAt.Equal(stamp))
	require.NotNil(t, gt.CompletedAt)
	assert.True(t, gt.CompletedAt.Equal(stamp))
}

func TestSave_NamespacesKeyPerUser(t *testing.T) {
	f := newFixture(t)
	other := NewItemStore(f.kv, f.reg, "user-2", testClock, nil)

	require.NoError(t, f.items.Save([]domain.Item{testTask(t, "mine")}))
	items, err := other.Load()
	require.NoError(t, err)
	assert.Empty(t, items, "another user's namespace stays empty")
}

func TestSave_StorageErrorIsSwallowed(t *testing.T) {
	reg := category.NewRegistry(kv.NewMem(), testClock)
	_, err := reg.Load()
	require.NoError(t, err)

	s := NewItemStore(failingKV{}, reg, "user-1", testClock, nil)
	assert.NoError(t, s.Save([]domain.Item{testTask(t, "kept in memory")}))
}

type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, assert.AnError }
func (failingKV) Set(string, []byte) error         { return assert.AnError }
func (failingKV) Remove(string) error              { return assert.AnError }

func TestLoad_LegacyMigration(t *testing.T) {
	f := newFixture(t)
	legacy := `{
		"events": [{
			"id": "ev-1",
			"title": "Retro",
			"startDateTime": "2025-06-16T10:00:00+02:00",
			"endDateTime": "2025-06-16T11:00:00+02:00",
			"category": "focus",
			"isAllDay": false,
			"createdAt": "2025-01-02T09:00:00+02:00",
			"updatedAt": "2025-01-02T09:00:00+02:00"
		}],
		"version": "1.0"
	}`
	require.NoError(t, f.kv.Set("user-1:"+LegacyKeySuffix, []byte(legacy)))

	items, err := f.items.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Every legacy record becomes an event.
	ev, ok := items[0].(*domain.Event)
	require.True(t, ok)
	assert.Equal(t, "ev-1", ev.ID)

	// The dangling "focus" reference got a synthesized category.
	assert.True(t, f.reg.Exists(ev.CategoryID))
	assert.Equal(t, "Focus", f.reg.Resolve(ev.CategoryID).Label)

	// Legacy key gone, v2 record present.
	_, ok2, err := f.kv.Get("user-1:" + LegacyKeySuffix)
	require.NoError(t, err)
	assert.False(t, ok2)
	_, ok2, err = f.kv.Get("user-1:" + ItemsKeySuffix)
	require.NoError(t, err)
	assert.True(t, ok2)

	// A second load comes straight from the v2 record.
	again, err := f.items.Load()
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, ev.CategoryID, again[0].Base().CategoryID)
}

func TestLoad_RepairsOrphanedReferencesAfterCategoryDelete(t *testing.T) {
	f := newFixture(t)
	c, err := f.reg.Add("Errands", category.ColorTokens{})
	require.NoError(t, err)

	var items []domain.Item
	for _, title := range []string{"one", "two", "three"} {
		it := testTask(t, title)
		it.Base().CategoryID = c.ID
		items = append(items, it)
	}
	require.NoError(t, f.items.Save(items))

	// Deleting the referenced category succeeds and leaves the items alone.
	require.NoError(t, f.reg.Delete(c.ID))

	got, err := f.items.Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, it := range got {
		assert.True(t, f.reg.Exists(it.Base().CategoryID), "reference repaired, not erroring")
	}
}

func TestClearCorruptedData(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.kv.Set("user-1:"+LegacyKeySuffix, []byte("garbage")))
	require.NoError(t, f.kv.Set("user-1:"+ItemsKeySuffix, []byte("garbage")))

	items, err := f.items.ClearCorruptedData()
	require.NoError(t, err)
	assert.NotEmpty(t, items, "reset reseeds the sample dataset")

	_, ok, err := f.kv.Get("user-1:" + LegacyKeySuffix)
	require.NoError(t, err)
	assert.False(t, ok)

	loaded, err := f.items.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, len(items))
}

func TestLoad_CorruptedRecordErrors(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.kv.Set("user-1:"+ItemsKeySuffix, []byte("not json")))
	_, err := f.items.Load()
	assert.Error(t, err)
}
