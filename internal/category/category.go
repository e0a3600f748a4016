// Package category implements the user-extensible category taxonomy: four
// protected defaults plus arbitrary custom labels, persisted as a single
// versioned record.
package category

import (
	"regexp"
	"strings"
	"time"
)

// Category is a user-visible tag. The color fields are opaque presentation
// tokens; the engine never interprets them.
type Category struct {
	ID          string
	Label       string
	Color       string
	BgColor     string
	BorderColor string
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ColorTokens groups the presentation tokens supplied on create/update.
type ColorTokens struct {
	Color       string
	BgColor     string
	BorderColor string
}

// FallbackID is the synthetic id substituted when an item's category cannot
// be resolved.
const FallbackID = "unknown"

// Defaults returns the four seed categories. Default categories cannot be
// renamed or deleted.
func Defaults(now time.Time) []Category {
	mk := func(id, label, color, bg, border string) Category {
		return Category{
			ID: id, Label: label,
			Color: color, BgColor: bg, BorderColor: border,
			IsDefault: true,
			CreatedAt: now, UpdatedAt: now,
		}
	}
	return []Category{
		mk("deep-work", "Deep Work", "#7c3aed", "#ede9fe", "#c4b5fd"),
		mk("work", "Work", "#2563eb", "#dbeafe", "#93c5fd"),
		mk("personal", "Personal", "#16a34a", "#dcfce7", "#86efac"),
		mk("meeting", "Meeting", "#ea580c", "#ffedd5", "#fdba74"),
	}
}

// Palette is the pool colors are drawn from when a category is synthesized
// during migration.
var Palette = []ColorTokens{
	{Color: "#0891b2", BgColor: "#cffafe", BorderColor: "#67e8f9"},
	{Color: "#be185d", BgColor: "#fce7f3", BorderColor: "#f9a8d4"},
	{Color: "#ca8a04", BgColor: "#fef9c3", BorderColor: "#fde047"},
	{Color: "#4f46e5", BgColor: "#e0e7ff", BorderColor: "#a5b4fc"},
	{Color: "#0d9488", BgColor: "#ccfbf1", BorderColor: "#5eead4"},
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a category id from its label: lowercase, runs of
// non-alphanumerics collapsed to single dashes, edges trimmed.
func Slugify(label string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(label), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "category"
	}
	return s
}
