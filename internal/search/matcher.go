package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/doc-archive/internal/attachments"
	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/internal/history"
	"github.com/JaimeStill/doc-archive/pkg/notes"
	"github.com/google/uuid"
)

// Matcher searches documents first, then attachments, and records every
// search in history.
type Matcher struct {
	documents   documents.System
	attachments attachments.System
	history     history.System
	logger      *slog.Logger
}

// New creates a Matcher. A nil history system disables recording.
func New(docs documents.System, atts attachments.System, hist history.System, logger *slog.Logger) *Matcher {
	return &Matcher{
		documents:   docs,
		attachments: atts,
		history:     hist,
		logger:      logger.With("system", "search"),
	}
}

// Handler returns the HTTP handler for the matcher.
func (m *Matcher) Handler() *Handler {
	return NewHandler(m, m.logger)
}

// Search returns document hits on field followed by attachment hits for the
// name and title fields. An attachment is listed only when its value differs
// from its document's own value in the first pass.
func (m *Matcher) Search(ctx context.Context, term string, field documents.Field) ([]Result, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	docs, err := m.documents.Search(ctx, field, term)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(docs))
	primary := make(map[uuid.UUID]string, len(docs))

	for _, d := range docs {
		value := d.Value(field)
		primary[d.ID] = value
		results = append(results, Result{
			Document:      d,
			MatchedNumber: d.Number(),
			Source:        SourceMain,
			Fields: notes.Fields{
				Number:         d.Number(),
				Date:           d.Date,
				Title:          d.Title,
				Department:     d.IssuingDept,
				Classification: d.Classification,
			},
		})
	}

	var attField attachments.Field
	switch field {
	case documents.FieldName:
		attField = attachments.FieldNumber
	case documents.FieldTitle:
		attField = attachments.FieldTitle
	default:
		m.record(ctx, term, field)
		return results, nil
	}

	atts, err := m.attachments.Search(ctx, attField, term)
	if err != nil {
		return nil, fmt.Errorf("search attachments: %w", err)
	}

	owners := make(map[uuid.UUID]*documents.Document)
	for i := range docs {
		owners[docs[i].ID] = &docs[i]
	}

	type key struct {
		doc   uuid.UUID
		value string
	}
	seen := make(map[key]bool)

	for i := range atts {
		a := atts[i]
		value := a.Number
		if field == documents.FieldTitle {
			value = a.Title
		}

		if v, ok := primary[a.DocumentID]; ok && v == value {
			continue
		}
		k := key{a.DocumentID, value}
		if seen[k] {
			continue
		}
		seen[k] = true

		owner, ok := owners[a.DocumentID]
		if !ok {
			owner, err = m.documents.Find(ctx, a.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("load attachment owner %s: %w", a.DocumentID, err)
			}
			owners[a.DocumentID] = owner
		}

		results = append(results, Result{
			Document:      *owner,
			MatchedNumber: a.Number,
			Source:        SourceAttachment,
			RawNotes:      a.RawNotes,
			Fields:        a.Fields(),
			Attachment:    &a,
		})
	}

	m.record(ctx, term, field)
	return results, nil
}

func (m *Matcher) record(ctx context.Context, term string, field documents.Field) {
	if m.history == nil {
		return
	}
	if _, err := m.history.Record(ctx, term, string(field)); err != nil {
		m.logger.Warn("search history not recorded", "term", term, "error", err)
	}
}
