package category

import "errors"

var (
	// ErrNotFound is returned when the category id does not exist.
	ErrNotFound = errors.New("category not found")

	// ErrDuplicateLabel is returned when a label collides case-insensitively
	// with an existing category.
	ErrDuplicateLabel = errors.New("category label already exists")

	// ErrDefaultImmutable is returned when a mutation would rename or delete
	// a default category.
	ErrDefaultImmutable = errors.New("default categories cannot be renamed or deleted")
)
