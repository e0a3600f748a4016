// Package service exposes the presentation contract of the calendar engine:
// the operations view components call, wired over the store, the category
// registry and the optional external item source.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/selfforge/calendar/internal/category"
	"github.com/selfforge/calendar/internal/domain"
	"github.com/selfforge/calendar/internal/query"
	"github.com/selfforge/calendar/internal/remote"
	"github.com/selfforge/calendar/internal/store"
)

var (
	// ErrItemNotFound is returned when the item id is absent from the
	// collection.
	ErrItemNotFound = errors.New("item not found")

	// ErrNotATask is returned when a task-only operation targets an event.
	ErrNotATask = errors.New("item is not a task")
)

// ItemSource is the consumed interface of the external backend. The engine
// works fully offline when it is nil.
type ItemSource interface {
	FetchItems(ctx context.Context) ([]remote.ItemRecord, error)
	CreateItem(ctx context.Context, rec remote.ItemRecord) (*remote.ItemRecord, error)
	UpdateItem(ctx context.Context, id string, patch remote.ItemRecord) (*remote.ItemRecord, error)
	DeleteItem(ctx context.Context, id string) error
}

// CalendarService owns the in-memory item collection between loads. All
// operations are synchronous; the only asynchronous boundary is RefreshItems
// against the external source.
type CalendarService struct {
	items    *store.ItemStore
	reg      *category.Registry
	source   ItemSource
	now      func() time.Time
	observer UseCaseObserver

	collection []domain.Item
	online     bool
}

// NewCalendarService wires the service. source may be nil for offline
// operation; a nil clock defaults to time.Now.
func NewCalendarService(items *store.ItemStore, reg *category.Registry, source ItemSource, now func() time.Time, observer UseCaseObserver) *CalendarService {
	if now == nil {
		now = time.Now
	}
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &CalendarService{
		items:    items,
		reg:      reg,
		source:   source,
		now:      now,
		observer: observer,
	}
}

func (s *CalendarService) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}

// Load reads the persisted collection into memory. Call once at startup;
// RefreshItems re-runs it with the external overlay.
func (s *CalendarService) Load() error {
	items, err := s.items.Load()
	if err != nil {
		return err
	}
	s.collection = items
	return nil
}

// Items returns the current in-memory collection.
func (s *CalendarService) Items() []domain.Item {
	out := make([]domain.Item, len(s.collection))
	copy(out, s.collection)
	return out
}

// Categories exposes the registry to the presentation layer.
func (s *CalendarService) Categories() *category.Registry {
	return s.reg
}

// ItemsForDate returns the items visible on the given day, sorted by start
// time.
func (s *CalendarService) ItemsForDate(date time.Time) []domain.Item {
	return query.SortByStartTime(query.ItemsForDate(s.collection, date))
}

// ItemsForRange returns the items intersecting [start, end], sorted by start
// time.
func (s *CalendarService) ItemsForRange(start, end time.Time) []domain.Item {
	return query.SortByStartTime(query.ItemsForRange(s.collection, start, end))
}

// AddTask validates and persists a new task.
func (s *CalendarService) AddTask(ctx context.Context, draft domain.ItemDraft) (*domain.Task, error) {
	start := s.now()
	draft.Kind = domain.KindTask
	task, err := domain.NewTask(draft, start)
	defer func() { s.observe(ctx, "add_task", start, err, nil) }()
	if err != nil {
		return nil, err
	}
	s.append(ctx, task)
	return task, nil
}

// AddEvent validates and persists a new event.
func (s *CalendarService) AddEvent(ctx context.Context, draft domain.ItemDraft) (*domain.Event, error) {
	start := s.now()
	draft.Kind = domain.KindEvent
	event, err := domain.NewEvent(draft, start)
	defer func() { s.observe(ctx, "add_event", start, err, nil) }()
	if err != nil {
		return nil, err
	}
	s.append(ctx, event)
	return event, nil
}

func (s *CalendarService) append(ctx context.Context, it domain.Item) {
	next := make([]domain.Item, 0, len(s.collection)+1)
	next = append(next, s.collection...)
	next = append(next, it)
	s.collection = next
	_ = s.items.Save(s.collection)
	s.pushCreate(ctx, it)
}

func (s *CalendarService) indexOf(id string) int {
	for i, it := range s.collection {
		if it.Base().ID == id {
			return i
		}
	}
	return -1
}

// UpdateItemByID merges patch over the identified item. On validation
// failure the collection and store are unchanged.
func (s *CalendarService) UpdateItemByID(ctx context.Context, id string, patch domain.Patch) (domain.Item, error) {
	start := s.now()
	var err error
	defer func() { s.observe(ctx, "update_item", start, err, map[string]any{"item_id": id}) }()

	i := s.indexOf(id)
	if i < 0 {
		err = fmt.Errorf("item %q: %w", id, ErrItemNotFound)
		return nil, err
	}
	updated, uerr := domain.UpdateItem(s.collection[i], patch, start)
	if uerr != nil {
		err = uerr
		return nil, err
	}
	s.replace(ctx, i, updated)
	return updated, nil
}

// DeleteItem removes the identified item from the collection.
func (s *CalendarService) DeleteItem(ctx context.Context, id string) error {
	start := s.now()
	var err error
	defer func() { s.observe(ctx, "delete_item", start, err, map[string]any{"item_id": id}) }()

	i := s.indexOf(id)
	if i < 0 {
		err = fmt.Errorf("item %q: %w", id, ErrItemNotFound)
		return err
	}
	next := make([]domain.Item, 0, len(s.collection)-1)
	next = append(next, s.collection[:i]...)
	next = append(next, s.collection[i+1:]...)
	s.collection = next
	_ = s.items.Save(s.collection)

	if s.source != nil {
		if derr := s.source.DeleteItem(ctx, id); derr != nil {
			s.online = false
		}
	}
	return nil
}

// ToggleTaskCompletion flips the completion state of the identified task.
func (s *CalendarService) ToggleTaskCompletion(ctx context.Context, id string) (*domain.Task, error) {
	start := s.now()
	var err error
	defer func() { s.observe(ctx, "toggle_task", start, err, map[string]any{"item_id": id}) }()

	i := s.indexOf(id)
	if i < 0 {
		err = fmt.Errorf("item %q: %w", id, ErrItemNotFound)
		return nil, err
	}
	task, ok := s.collection[i].(*domain.Task)
	if !ok {
		err = fmt.Errorf("item %q: %w", id, ErrNotATask)
		return nil, err
	}
	toggled := domain.ToggleTaskCompletion(task, start)
	s.replace(ctx, i, toggled)
	return toggled, nil
}

func (s *CalendarService) replace(ctx context.Context, i int, it domain.Item) {
	next := make([]domain.Item, len(s.collection))
	copy(next, s.collection)
	next[i] = it
	s.collection = next
	_ = s.items.Save(s.collection)
	s.pushUpdate(ctx, it)
}

// RefreshItems reconciles against the external item source. On success the
// remote results replace the local collection and are persisted as a backup
// copy; on failure or timeout the local persisted collection is used
// unmodified and only the connectivity signal changes.
func (s *CalendarService) RefreshItems(ctx context.Context) error {
	start := s.now()
	var err error
	defer func() { s.observe(ctx, "refresh_items", start, err, map[string]any{"online": s.online}) }()

	if s.source == nil {
		err = s.Load()
		return err
	}

	recs, ferr := s.source.FetchItems(ctx)
	if ferr != nil {
		s.online = false
		err = s.Load()
		return err
	}

	items := make([]domain.Item, 0, len(recs))
	for _, rec := range recs {
		it, terr := remote.FromWire(rec)
		if terr != nil {
			// One bad record must not take the calendar down.
			continue
		}
		items = append(items, it)
	}
	items = store.MigrateItemCategories(items, s.reg)
	s.collection = items
	_ = s.items.SaveSynced(items, start)
	s.online = true
	return nil
}

// ResetData is the explicit, irreversible recovery path: it clears both
// storage keys and reseeds the sample dataset.
func (s *CalendarService) ResetData(ctx context.Context) ([]domain.Item, error) {
	start := s.now()
	items, err := s.items.ClearCorruptedData()
	s.observe(ctx, "reset_data", start, err, nil)
	if err != nil {
		return nil, err
	}
	s.collection = items
	return s.Items(), nil
}

// Connectivity reports whether the last external-source interaction
// succeeded. Mutation callers never see source errors; this signal is the
// only surfacing.
func (s *CalendarService) Connectivity() bool {
	return s.online
}

func (s *CalendarService) pushCreate(ctx context.Context, it domain.Item) {
	if s.source == nil {
		return
	}
	if _, err := s.source.CreateItem(ctx, remote.ToWire(it)); err != nil {
		s.online = false
		return
	}
	s.online = true
}

func (s *CalendarService) pushUpdate(ctx context.Context, it domain.Item) {
	if s.source == nil {
		return
	}
	if _, err := s.source.UpdateItem(ctx, it.Base().ID, remote.ToWire(it)); err != nil {
		s.online = false
		return
	}
	s.online = true
}
