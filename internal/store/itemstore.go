package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/selfforge/calendar/internal/category"
	"github.com/selfforge/calendar/internal/domain"
	"github.com/selfforge/calendar/internal/kv"
)

const (
	// ItemsKeySuffix is the current-version storage key, namespaced per user.
	ItemsKeySuffix = "selfforge-calendar-items"

	// LegacyKeySuffix is the pre-v2 storage key. The legacy schema only held
	// events.
	LegacyKeySuffix = "selfforge-calendar-events"
)

// ItemStore is the versioned persistence layer for the item collection.
// Storage state machine per namespace: absent -> v1 legacy -> v2 current.
type ItemStore struct {
	store  kv.KV
	reg    *category.Registry
	ns     string
	now    func() time.Time
	logger *slog.Logger
}

// NewItemStore builds an item store for one namespace. A nil clock defaults
// to time.Now; a nil logger discards.
func NewItemStore(store kv.KV, reg *category.Registry, ns string, now func() time.Time, logger *slog.Logger) *ItemStore {
	if ns == "" {
		ns = AnonymousNamespace
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ItemStore{store: store, reg: reg, ns: ns, now: now, logger: logger}
}

func (s *ItemStore) itemsKey() string  { return s.ns + ":" + ItemsKeySuffix }
func (s *ItemStore) legacyKey() string { return s.ns + ":" + LegacyKeySuffix }

// Load reads the item collection, migrating from the legacy schema and
// repairing category references on the way. Load order: v2 record, then
// legacy record (which is upgraded and deleted), then empty.
func (s *ItemStore) Load() ([]domain.Item, error) {
	raw, ok, err := s.store.Get(s.itemsKey())
	if err != nil {
		return nil, fmt.Errorf("reading item store: %w", err)
	}
	if ok {
		items, err := decodeItems(raw)
		if err != nil {
			return nil, err
		}
		return MigrateItemCategories(items, s.reg), nil
	}

	raw, ok, err = s.store.Get(s.legacyKey())
	if err != nil {
		return nil, fmt.Errorf("reading legacy item store: %w", err)
	}
	if ok {
		items, err := decodeLegacy(raw)
		if err != nil {
			return nil, err
		}
		items = MigrateItemCategories(items, s.reg)
		if err := s.Save(items); err != nil {
			return nil, err
		}
		if err := s.store.Remove(s.legacyKey()); err != nil {
			return nil, fmt.Errorf("removing legacy key: %w", err)
		}
		s.logger.Info("migrated legacy item store",
			"namespace", s.ns, "items", len(items))
		return items, nil
	}

	return []domain.Item{}, nil
}

// Save writes the full collection under the namespaced v2 key. There is no
// incremental diff. Storage failures are logged and swallowed: the write
// must not corrupt the in-memory copy the user is actively editing.
func (s *ItemStore) Save(items []domain.Item) error {
	return s.save(items, "")
}

// SaveSynced records a successful reconciliation against the external item
// source alongside the collection.
func (s *ItemStore) SaveSynced(items []domain.Item, syncedAt time.Time) error {
	return s.save(items, syncedAt.Format(time.RFC3339))
}

func (s *ItemStore) save(items []domain.Item, lastSync string) error {
	data, err := encodeItems(items, lastSync)
	if err != nil {
		s.logger.Error("encoding item store failed", "namespace", s.ns, "error", err)
		return nil
	}
	if err := s.store.Set(s.itemsKey(), data); err != nil {
		s.logger.Error("writing item store failed", "namespace", s.ns, "error", err)
		return nil
	}
	return nil
}

// ClearCorruptedData is an explicit, irreversible reset: both the current
// and legacy keys are deleted and a small sample dataset is reseeded so the
// calendar is never left empty afterwards.
func (s *ItemStore) ClearCorruptedData() ([]domain.Item, error) {
	if err := s.store.Remove(s.itemsKey()); err != nil {
		return nil, fmt.Errorf("removing item key: %w", err)
	}
	if err := s.store.Remove(s.legacyKey()); err != nil {
		return nil, fmt.Errorf("removing legacy key: %w", err)
	}
	items := SampleItems(s.now())
	if err := s.Save(items); err != nil {
		return nil, err
	}
	s.logger.Info("item store reset", "namespace", s.ns, "seeded", len(items))
	return items, nil
}
