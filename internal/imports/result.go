package imports

import (
	"fmt"

	"github.com/google/uuid"
)

// Options adjust a single import run.
type Options struct {
	// Year prefixes storage keys, grouping files into year folders.
	Year string `json:"year,omitempty"`
	// IncludeUnrecognized imports unparsable files into fallback documents
	// instead of skipping them.
	IncludeUnrecognized bool `json:"include_unrecognized"`
	// Titles supplies document titles keyed by document number.
	Titles map[string]string `json:"titles,omitempty"`
}

// Status is the outcome of one file.
type Status string

const (
	StatusImported Status = "imported"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
)

// Item reports what happened to one file.
type Item struct {
	File       string     `json:"file"`
	Status     Status     `json:"status"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	PageNumber int        `json:"page_number,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Result aggregates an import run.
type Result struct {
	Imported     int    `json:"imported"`
	Documents    int    `json:"documents"`
	Created      int    `json:"created"`
	Reused       int    `json:"reused"`
	Failed       int    `json:"failed"`
	Unrecognized int    `json:"unrecognized"`
	Skipped      int    `json:"skipped"`
	Total        int    `json:"total"`
	Cancelled    bool   `json:"cancelled"`
	Items        []Item `json:"items"`
}

// Summary renders the counts for display.
func (r *Result) Summary() string {
	if r.Cancelled {
		return fmt.Sprintf("imported %d of %d before cancellation", r.Imported, r.Total)
	}
	return fmt.Sprintf(
		"imported %d of %d into %d documents (%d new), %d failed, %d unrecognized, %d skipped",
		r.Imported, r.Total, r.Documents, r.Created, r.Failed, r.Unrecognized, r.Skipped,
	)
}

func (r *Result) add(item Item) {
	r.Items = append(r.Items, item)
	switch item.Status {
	case StatusImported:
		r.Imported++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
}
