package category

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/selfforge/calendar/internal/kv"
)

// StoreKey is the fixed storage key for the category record. Categories are
// device-global: the key is deliberately not namespaced per user, unlike the
// item store.
const StoreKey = "selfforge-calendar-categories"

// storeVersion tags the persisted category record.
const storeVersion = "1.0.0"

// Registry is the CRUD store for categories. It is constructed with an
// explicit storage adapter and clock so tests can inject both; there is no
// package-level cache.
type Registry struct {
	store kv.KV
	now   func() time.Time
	cats  []Category
}

// NewRegistry builds a registry over the given adapter. A nil clock defaults
// to time.Now.
func NewRegistry(store kv.KV, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{store: store, now: now}
}

// categoryRecord is the persisted shape of a category. Instants are declared
// as RFC3339 string fields here rather than sniffed at decode time.
type categoryRecord struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	BgColor     string `json:"bgColor"`
	BorderColor string `json:"borderColor"`
	IsDefault   bool   `json:"isDefault"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type storeRecord struct {
	Categories  []categoryRecord `json:"categories"`
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
}

func encodeCategory(c Category) categoryRecord {
	return categoryRecord{
		ID:          c.ID,
		Label:       c.Label,
		Color:       c.Color,
		BgColor:     c.BgColor,
		BorderColor: c.BorderColor,
		IsDefault:   c.IsDefault,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func decodeCategory(r categoryRecord) Category {
	created, _ := time.Parse(time.RFC3339, r.CreatedAt)
	updated, _ := time.Parse(time.RFC3339, r.UpdatedAt)
	return Category{
		ID:          r.ID,
		Label:       r.Label,
		Color:       r.Color,
		BgColor:     r.BgColor,
		BorderColor: r.BorderColor,
		IsDefault:   r.IsDefault,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
}

// Load returns the persisted category list, seeding the four defaults on
// first run or when the stored record cannot be decoded.
func (r *Registry) Load() ([]Category, error) {
	raw, ok, err := r.store.Get(StoreKey)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	if ok {
		var rec storeRecord
		if err := json.Unmarshal(raw, &rec); err == nil && len(rec.Categories) > 0 {
			r.cats = make([]Category, 0, len(rec.Categories))
			for _, cr := range rec.Categories {
				r.cats = append(r.cats, decodeCategory(cr))
			}
			return r.List(), nil
		}
		// Corrupted record: fall through and reseed.
	}

	r.cats = Defaults(r.now())
	if err := r.persist(); err != nil {
		return nil, err
	}
	return r.List(), nil
}

func (r *Registry) persist() error {
	rec := storeRecord{
		Categories:  make([]categoryRecord, 0, len(r.cats)),
		Version:     storeVersion,
		LastUpdated: r.now().Format(time.RFC3339),
	}
	for _, c := range r.cats {
		rec.Categories = append(rec.Categories, encodeCategory(c))
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}
	if err := r.store.Set(StoreKey, data); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}
	return nil
}

// ensureLoaded lazily seeds the cache so Resolve stays total even when the
// caller never ran Load.
func (r *Registry) ensureLoaded() {
	if r.cats == nil {
		_, _ = r.Load()
	}
	if r.cats == nil {
		r.cats = Defaults(r.now())
	}
}

// List returns a copy of the category list in persisted order.
func (r *Registry) List() []Category {
	r.ensureLoaded()
	out := make([]Category, len(r.cats))
	copy(out, r.cats)
	return out
}

func (r *Registry) indexOf(id string) int {
	for i, c := range r.cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) labelTaken(label string, excludeID string) bool {
	for _, c := range r.cats {
		if c.ID != excludeID && strings.EqualFold(c.Label, label) {
			return true
		}
	}
	return false
}

// uniqueID slugifies the label and appends -1, -2, ... until the id is
// unused. Guarantees id uniqueness without a global counter.
func (r *Registry) uniqueID(label string) string {
	slug := Slugify(label)
	id := slug
	for n := 1; r.indexOf(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", slug, n)
	}
	return id
}

// Add creates a custom category. The label must be unique case-insensitively.
func (r *Registry) Add(label string, tokens ColorTokens) (*Category, error) {
	r.ensureLoaded()
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("category label must not be empty")
	}
	if r.labelTaken(label, "") {
		return nil, fmt.Errorf("label %q: %w", label, ErrDuplicateLabel)
	}

	now := r.now()
	c := Category{
		ID:          r.uniqueID(label),
		Label:       label,
		Color:       tokens.Color,
		BgColor:     tokens.BgColor,
		BorderColor: tokens.BorderColor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.cats = append(r.cats, c)
	if err := r.persist(); err != nil {
		r.cats = r.cats[:len(r.cats)-1]
		return nil, err
	}
	return &c, nil
}

// Patch is a partial category update; nil fields are left unchanged.
type Patch struct {
	Label  *string
	Colors *ColorTokens
}

// Update applies patch to the category with the given id.
func (r *Registry) Update(id string, patch Patch) (*Category, error) {
	r.ensureLoaded()
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	c := r.cats[i]

	if patch.Label != nil && *patch.Label != c.Label {
		if c.IsDefault {
			return nil, fmt.Errorf("category %q: %w", id, ErrDefaultImmutable)
		}
		label := strings.TrimSpace(*patch.Label)
		if r.labelTaken(label, id) {
			return nil, fmt.Errorf("label %q: %w", label, ErrDuplicateLabel)
		}
		c.Label = label
	}
	if patch.Colors != nil {
		c.Color = patch.Colors.Color
		c.BgColor = patch.Colors.BgColor
		c.BorderColor = patch.Colors.BorderColor
	}
	c.UpdatedAt = r.now()

	prev := r.cats[i]
	r.cats[i] = c
	if err := r.persist(); err != nil {
		r.cats[i] = prev
		return nil, err
	}
	return &c, nil
}

// Delete removes a custom category. Items referencing it are left alone;
// orphaned references are repaired lazily by the item store's migration at
// the next load.
func (r *Registry) Delete(id string) error {
	r.ensureLoaded()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if r.cats[i].IsDefault {
		return fmt.Errorf("category %q: %w", id, ErrDefaultImmutable)
	}

	prev := r.cats
	r.cats = append(append([]Category{}, r.cats[:i]...), r.cats[i+1:]...)
	if err := r.persist(); err != nil {
		r.cats = prev
		return err
	}
	return nil
}

// Resolve maps a category id to a category, substituting a synthetic gray
// fallback for absent or unknown ids. It never fails; rendering code can
// assume total coverage.
func (r *Registry) Resolve(id string) Category {
	r.ensureLoaded()
	if i := r.indexOf(id); i >= 0 {
		return r.cats[i]
	}
	label := id
	if label == "" {
		label = "Unknown"
	}
	return Category{
		ID:          FallbackID,
		Label:       label,
		Color:       "#6b7280",
		BgColor:     "#f3f4f6",
		BorderColor: "#d1d5db",
	}
}

// Exists reports whether a category with the given id is registered.
func (r *Registry) Exists(id string) bool {
	r.ensureLoaded()
	return r.indexOf(id) >= 0
}

// FindByLabel returns the category with a case-insensitive label match.
func (r *Registry) FindByLabel(label string) (Category, bool) {
	r.ensureLoaded()
	for _, c := range r.cats {
		if strings.EqualFold(c.Label, label) {
			return c, true
		}
	}
	return Category{}, false
}

// Synthesize creates a custom category for an unresolved reference found
// during migration, drawing a random palette color. The label is the raw
// reference, title-cased for display.
func (r *Registry) Synthesize(ref string) (*Category, error) {
	label := strings.TrimSpace(ref)
	if label == "" {
		label = "Unknown"
	}
	r0, size := utf8.DecodeRuneInString(label)
	label = string(unicode.ToUpper(r0)) + label[size:]
	tokens := Palette[rand.Intn(len(Palette))]
	return r.Add(label, tokens)
}

// ResetToDefaults discards all custom categories and restores exactly the
// four seeds.
func (r *Registry) ResetToDefaults() ([]Category, error) {
	r.cats = Defaults(r.now())
	if err := r.persist(); err != nil {
		return nil, err
	}
	return r.List(), nil
}
