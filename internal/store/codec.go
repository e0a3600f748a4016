package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/selfforge/calendar/internal/domain"
)

// CurrentVersion tags v2 item records.
const CurrentVersion = "2.0.0"

// itemRecord is the persisted shape of a calendar item. Instant fields are
// declared explicitly and carried as RFC3339 strings; nothing is inferred
// from string shapes at decode time.
type itemRecord struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"startDateTime"`
	End         string `json:"endDateTime"`
	Category    string `json:"category"`
	IsAllDay    bool   `json:"isAllDay"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`

	// Task fields
	Completed    *bool   `json:"completed,omitempty"`
	CompletedAt  *string `json:"completedAt,omitempty"`
	Priority     string  `json:"priority,omitempty"`
	EstimatedMin *int    `json:"estimatedDuration,omitempty"`
	ActualMin    *int    `json:"actualDuration,omitempty"`

	// Event fields
	Location  string   `json:"location,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
}

// itemsRecord is the v2 store document.
type itemsRecord struct {
	Items    []itemRecord `json:"items"`
	LastSync string       `json:"lastSync,omitempty"`
	Version  string       `json:"version"`
}

// legacyRecord is the pre-v2 document. The legacy schema only supported
// events, so records carry no type discriminant.
type legacyRecord struct {
	Events  []itemRecord `json:"events"`
	Version string       `json:"version"`
}

// encodeInstant keeps full nanosecond precision; decoding accepts both
// fractional and whole-second forms, so older records still load.
func encodeInstant(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func decodeInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing instant %q: %w", s, err)
	}
	return t, nil
}

func encodeItem(it domain.Item) itemRecord {
	b := it.Base()
	rec := itemRecord{
		ID:          b.ID,
		Type:        string(it.Kind()),
		Title:       b.Title,
		Description: b.Description,
		Start:       encodeInstant(b.StartDateTime),
		End:         encodeInstant(b.EndDateTime),
		Category:    b.CategoryID,
		IsAllDay:    b.AllDay,
		CreatedAt:   encodeInstant(b.CreatedAt),
		UpdatedAt:   encodeInstant(b.UpdatedAt),
	}

	switch v := it.(type) {
	case *domain.Task:
		completed := v.Completed
		rec.Completed = &completed
		if v.CompletedAt != nil {
			s := encodeInstant(*v.CompletedAt)
			rec.CompletedAt = &s
		}
		rec.Priority = string(v.Priority)
		rec.EstimatedMin = v.EstimatedMin
		rec.ActualMin = v.ActualMin
	case *domain.Event:
		rec.Location = v.Location
		rec.Attendees = v.Attendees
	}
	return rec
}

func decodeBase(rec itemRecord) (domain.ItemBase, error) {
	start, err := decodeInstant(rec.Start)
	if err != nil {
		return domain.ItemBase{}, err
	}
	end, err := decodeInstant(rec.End)
	if err != nil {
		return domain.ItemBase{}, err
	}
	created, err := decodeInstant(rec.CreatedAt)
	if err != nil {
		return domain.ItemBase{}, err
	}
	updated, err := decodeInstant(rec.UpdatedAt)
	if err != nil {
		return domain.ItemBase{}, err
	}
	return domain.ItemBase{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		StartDateTime: start,
		EndDateTime:   end,
		CategoryID:    rec.Category,
		AllDay:        rec.IsAllDay,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}, nil
}

// decodeItem turns a stored record back into a domain item. Records without
// a type discriminant decode as events, matching the only kind the legacy
// schema supported.
func decodeItem(rec itemRecord) (domain.Item, error) {
	base, err := decodeBase(rec)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", rec.ID, err)
	}

	switch domain.ItemKind(rec.Type) {
	case domain.KindTask:
		t := &domain.Task{
			ItemBase:     base,
			Priority:     domain.Priority(rec.Priority),
			EstimatedMin: rec.EstimatedMin,
			ActualMin:    rec.ActualMin,
		}
		if rec.Completed != nil {
			t.Completed = *rec.Completed
		}
		if rec.CompletedAt != nil {
			at, err := decodeInstant(*rec.CompletedAt)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", rec.ID, err)
			}
			t.CompletedAt = &at
		}
		if t.Priority == "" {
			t.Priority = domain.PriorityMedium
		}
		return t, nil
	case domain.KindEvent, "":
		return &domain.Event{
			ItemBase:  base,
			Location:  rec.Location,
			Attendees: rec.Attendees,
		}, nil
	default:
		return nil, fmt.Errorf("item %s: unknown type %q", rec.ID, rec.Type)
	}
}

func encodeItems(items []domain.Item, lastSync string) ([]byte, error) {
	rec := itemsRecord{
		Items:    make([]itemRecord, 0, len(items)),
		LastSync: lastSync,
		Version:  CurrentVersion,
	}
	for _, it := range items {
		rec.Items = append(rec.Items, encodeItem(it))
	}
	return json.Marshal(rec)
}

func decodeItems(data []byte) ([]domain.Item, error) {
	var rec itemsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding item record: %w", err)
	}
	items := make([]domain.Item, 0, len(rec.Items))
	for _, ir := range rec.Items {
		it, err := decodeItem(ir)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func decodeLegacy(data []byte) ([]domain.Item, error) {
	var rec legacyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding legacy record: %w", err)
	}
	items := make([]domain.Item, 0, len(rec.Events))
	for _, ir := range rec.Events {
		ir.Type = string(domain.KindEvent)
		it, err := decodeItem(ir)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
