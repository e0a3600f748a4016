package query

import "github.com/selfforge/calendar/internal/domain"

// FilterOpts narrows a collection by kind, category or completion state.
// Nil/empty fields are ignored. Completed only ever matches tasks.
type FilterOpts struct {
	Kind       domain.ItemKind
	CategoryID string
	Completed  *bool
}

// Filter applies opts to items, preserving order.
func Filter(items []domain.Item, opts FilterOpts) []domain.Item {
	var out []domain.Item
	for _, it := range items {
		if opts.Kind != "" && it.Kind() != opts.Kind {
			continue
		}
		if opts.CategoryID != "" && it.Base().CategoryID != opts.CategoryID {
			continue
		}
		if opts.Completed != nil {
			t, ok := it.(*domain.Task)
			if !ok || t.Completed != *opts.Completed {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}
