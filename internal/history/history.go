// Package history records the terms users search for.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded search.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Term      string    `json:"term"`
	Field     string    `json:"field"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultLimit bounds Recent when no limit is given.
const DefaultLimit = 50
