package cli

import (
	"fmt"
	"strings"

	"github.com/selfforge/calendar/internal/category"
	"github.com/selfforge/calendar/internal/domain"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveItemID accepts a full id or a unique prefix.
func resolveItemID(app *App, ref string) (string, error) {
	var match string
	for _, it := range app.Calendar.Items() {
		id := it.Base().ID
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous item id %q", ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no item matches %q", ref)
	}
	return match, nil
}

func formatItemLine(it domain.Item, reg *category.Registry) string {
	b := it.Base()
	cat := reg.Resolve(b.CategoryID)

	when := "all day"
	if !b.AllDay {
		when = fmt.Sprintf("%s-%s", b.StartDateTime.Format("15:04"), b.EndDateTime.Format("15:04"))
	}

	mark := " "
	suffix := ""
	switch v := it.(type) {
	case *domain.Task:
		if v.Completed {
			mark = "x"
		}
		suffix = fmt.Sprintf(" (%s)", v.Priority)
	case *domain.Event:
		if v.Location != "" {
			suffix = fmt.Sprintf(" @ %s", v.Location)
		}
	}

	return fmt.Sprintf("[%s] %-11s %s%s  #%s [%s]", mark, when, b.Title, suffix, cat.Label, shortID(b.ID))
}
