package repositories

import (
	"reefclean/internal/types"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest asks for up to Limit rows starting at the row whose ID is
// Cursor, inclusive.
type PageRequest struct {
	Limit  int
	Cursor *uuid.UUID
}

func (p PageRequest) limit() int {
	if p.Limit <= 0 {
		return DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		return MaxPageLimit
	}
	return p.Limit
}

type Page[T any] struct {
	Items      []T        `json:"items"`
	NextCursor *uuid.UUID `json:"nextCursor"`
}

// newPage trims the extra look-ahead row and turns it into the next cursor.
func newPage[T any](rows []T, limit int, idOf func(T) uuid.UUID) Page[T] {
	page := Page[T]{Items: rows}
	if page.Items == nil {
		page.Items = []T{}
	}

	if len(rows) > limit {
		next := idOf(rows[limit])
		page.Items = rows[:limit]
		page.NextCursor = &next
	}

	return page
}

func invalidCursor(cursor uuid.UUID) error {
	return types.NewValidationError("cursor", "exists", "does not match any row: "+cursor.String())
}
