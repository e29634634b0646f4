// Package documents manages archived paper documents: their metadata rows,
// lookup by (number, date) identity, and field search.
package documents

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/doc-archive/pkg/filename"
	"github.com/google/uuid"
)

// Document is one archived paper document. Its import identity is the
// leading number of Name together with Date.
type Document struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Date           string    `json:"date"`
	Title          string    `json:"title"`
	IssuingDept    string    `json:"issuing_dept"`
	Classification string    `json:"classification"`
	LegalParagraph string    `json:"legal_paragraph"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Number returns the leading number token of the document name.
func (d Document) Number() string {
	return filename.LeadingToken(d.Name)
}

// Value returns the document's value for a searchable field.
func (d Document) Value(f Field) string {
	switch f {
	case FieldName:
		return d.Number()
	case FieldDate:
		return d.Date
	case FieldTitle:
		return d.Title
	case FieldDepartment:
		return d.IssuingDept
	case FieldClassification:
		return d.Classification
	default:
		return ""
	}
}

// CreateCommand contains the fields of a new document.
type CreateCommand struct {
	Name           string `json:"name"`
	Date           string `json:"date"`
	Title          string `json:"title"`
	IssuingDept    string `json:"issuing_dept"`
	Classification string `json:"classification"`
	LegalParagraph string `json:"legal_paragraph"`
}

// Validate requires a non-empty name.
func (c CreateCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDocument)
	}
	return nil
}

// UpdateCommand changes only the non-nil fields.
type UpdateCommand struct {
	Name           *string `json:"name,omitempty"`
	Date           *string `json:"date,omitempty"`
	Title          *string `json:"title,omitempty"`
	IssuingDept    *string `json:"issuing_dept,omitempty"`
	Classification *string `json:"classification,omitempty"`
	LegalParagraph *string `json:"legal_paragraph,omitempty"`
}

// Validate rejects an explicit empty name.
func (c UpdateCommand) Validate() error {
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidDocument)
	}
	return nil
}

// Field names a searchable document attribute.
type Field string

const (
	FieldName           Field = "name"
	FieldDate           Field = "date"
	FieldTitle          Field = "title"
	FieldDepartment     Field = "department"
	FieldClassification Field = "classification"
)

// ParseField validates a field name. An empty name selects FieldName.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FieldName, nil
	case FieldName, FieldDate, FieldTitle, FieldDepartment, FieldClassification:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
}
