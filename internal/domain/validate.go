package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected field at the mutation boundary.
// Invalid values are never stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validateBase(b *ItemBase) error {
	if strings.TrimSpace(b.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if b.StartDateTime.IsZero() {
		return &ValidationError{Field: "startDateTime", Reason: "is required"}
	}
	if !b.AllDay && !b.EndDateTime.After(b.StartDateTime) {
		return &ValidationError{Field: "endDateTime", Reason: "must be after startDateTime"}
	}
	if b.CategoryID == "" {
		return &ValidationError{Field: "category", Reason: "is required"}
	}
	return nil
}
