// Package attachments stores the secondary papers filed inside a document:
// each carries its own number, date, and title and is searchable alongside
// the main documents.
package attachments

import (
	"strings"
	"time"

	"github.com/JaimeStill/doc-archive/pkg/notes"
	"github.com/google/uuid"
)

// Attachment is a secondary paper filed within a document.
type Attachment struct {
	ID             uuid.UUID  `json:"id"`
	DocumentID     uuid.UUID  `json:"document_id"`
	ImageID        *uuid.UUID `json:"image_id,omitempty"`
	Number         string     `json:"number"`
	Date           string     `json:"date"`
	Title          string     `json:"title"`
	Department     string     `json:"department"`
	Classification string     `json:"classification"`
	Notes          string     `json:"notes"`
	RawNotes       string     `json:"raw_notes"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Fields returns the attachment as a typed notes projection.
func (a Attachment) Fields() notes.Fields {
	return notes.Fields{
		Number:         a.Number,
		Date:           a.Date,
		Title:          a.Title,
		Department:     a.Department,
		Classification: a.Classification,
		Notes:          a.Notes,
	}
}

// CreateCommand describes a new attachment.
type CreateCommand struct {
	DocumentID uuid.UUID    `json:"document_id"`
	ImageID    *uuid.UUID   `json:"image_id,omitempty"`
	Fields     notes.Fields `json:"fields"`
	// RawNotes is the notes text behind Fields: the legacy string they were
	// parsed from, or their formatted rendering for manual entry.
	RawNotes string `json:"raw_notes,omitempty"`
}

// Validate requires a number or a title.
func (c CreateCommand) Validate() error {
	if strings.TrimSpace(c.Fields.Number) == "" && strings.TrimSpace(c.Fields.Title) == "" {
		return ErrInvalidAttachment
	}
	return nil
}

// Field names a searchable attachment attribute.
type Field string

const (
	FieldNumber Field = "name"
	FieldTitle  Field = "title"
)
