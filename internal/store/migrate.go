package store

import (
	"github.com/selfforge/calendar/internal/category"
	"github.com/selfforge/calendar/internal/domain"
)

// MigrateItemCategories repairs dangling category references. It is total
// and idempotent: a reference that resolves is kept, one matching an
// existing label is rewritten to that id, and anything else gets a freshly
// synthesized custom category. If synthesis fails the item falls back to the
// first available category; an item is never left dangling and the load
// path never errors here.
func MigrateItemCategories(items []domain.Item, reg *category.Registry) []domain.Item {
	out := make([]domain.Item, len(items))
	for i, it := range items {
		out[i] = migrateItem(it, reg)
	}
	return out
}

func migrateItem(it domain.Item, reg *category.Registry) domain.Item {
	ref := it.Base().CategoryID
	if reg.Exists(ref) {
		return it
	}

	var newID string
	if c, ok := reg.FindByLabel(ref); ok {
		newID = c.ID
	} else if c, err := reg.Synthesize(ref); err == nil {
		newID = c.ID
	} else if cats := reg.List(); len(cats) > 0 {
		newID = cats[0].ID
	} else {
		newID = category.FallbackID
	}

	fixed := it.Clone()
	fixed.Base().CategoryID = newID
	return fixed
}
