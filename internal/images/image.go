package images

import (
	"time"

	"github.com/google/uuid"
)

// Image is one scanned page of a document.
type Image struct {
	ID               uuid.UUID `json:"id"`
	DocumentID       uuid.UUID `json:"document_id"`
	Path             string    `json:"path"`
	OriginalFilename string    `json:"original_filename"`
	PageNumber       int       `json:"page_number"`
	Sequence         *string   `json:"sequence,omitempty"`
	Sides            int       `json:"sides"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// InsertCommand describes a page whose file is already in storage at Path.
type InsertCommand struct {
	DocumentID       uuid.UUID
	Path             string
	OriginalFilename string
	PageNumber       int
	Sequence         *string
	Notes            *string
}
