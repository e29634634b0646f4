// Package search merges document and attachment matches into one ranked
// result list.
package search

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/doc-archive/internal/attachments"
	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/pkg/notes"
)

// Source tells which record produced a result.
type Source string

const (
	SourceMain       Source = "main"
	SourceAttachment Source = "attachment"
)

// Result is one search hit. Attachment hits carry the owning document.
type Result struct {
	Document      documents.Document      `json:"document"`
	MatchedNumber string                  `json:"matched_number"`
	Source        Source                  `json:"source"`
	RawNotes      string                  `json:"raw_notes,omitempty"`
	Fields        notes.Fields            `json:"fields"`
	Attachment    *attachments.Attachment `json:"attachment,omitempty"`
}

// Request is the body of a search call.
type Request struct {
	Term  string `json:"term"`
	Field string `json:"field"`
}

// ErrEmptyTerm is returned for a blank search term.
var ErrEmptyTerm = errors.New("search term is required")

// MapHTTPStatus maps search errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyTerm), errors.Is(err, documents.ErrInvalidField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
