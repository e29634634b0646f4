// Package archive adds documents entered by hand: the metadata, the page
// files in the order given, and the details of any attachment pages.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/doc-archive/internal/attachments"
	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/internal/images"
	"github.com/JaimeStill/doc-archive/internal/imports"
	"github.com/JaimeStill/doc-archive/pkg/filename"
	"github.com/JaimeStill/doc-archive/pkg/notes"
)

// ErrNoPages is returned for an entry without page files.
var ErrNoPages = errors.New("document entry has no pages")

// Page is one file of a manual entry. Attachment, when set, records the
// page as a separate paper with its own details.
type Page struct {
	Path       string        `json:"path"`
	Attachment *notes.Fields `json:"attachment,omitempty"`
}

// Entry is a manually entered document.
type Entry struct {
	documents.CreateCommand
	Year  string `json:"year,omitempty"`
	Pages []Page `json:"pages"`
}

// Added reports the rows created for an entry. Reused is set when the
// pages were appended to a document already in the archive.
type Added struct {
	Document    *documents.Document      `json:"document"`
	Reused      bool                     `json:"reused"`
	Images      []images.Image           `json:"images"`
	Attachments []attachments.Attachment `json:"attachments"`
	Failed      []imports.Item           `json:"failed,omitempty"`
}

// Archive coordinates the document, image, and attachment systems for
// manual entry.
type Archive struct {
	documents   documents.System
	images      images.System
	attachments attachments.System
	copier      imports.Copier
	logger      *slog.Logger
}

// New creates an Archive.
func New(docs documents.System, imgs images.System, atts attachments.System, copier imports.Copier, logger *slog.Logger) *Archive {
	return &Archive{
		documents:   docs,
		images:      imgs,
		attachments: atts,
		copier:      copier,
		logger:      logger.With("system", "archive"),
	}
}

// Handler returns the HTTP handler for manual entry.
func (a *Archive) Handler() *Handler {
	return NewHandler(a, a.logger)
}

// AddDocument stores the pages of an entry in the order given. A name of
// the form "<number> في <date>" that identifies an archived document appends
// to it after its last page; otherwise the document is created and the pages
// become 1..n. A page that cannot be copied or recorded is reported in
// Added.Failed and does not consume a page number.
func (a *Archive) AddDocument(ctx context.Context, entry Entry) (*Added, error) {
	if len(entry.Pages) == 0 {
		return nil, ErrNoPages
	}

	doc, reused, err := a.resolve(ctx, entry.CreateCommand)
	if err != nil {
		return nil, err
	}

	page, err := a.images.NextPageNumber(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	added := &Added{
		Document:    doc,
		Reused:      reused,
		Images:      make([]images.Image, 0, len(entry.Pages)),
		Attachments: []attachments.Attachment{},
	}

	for _, p := range entry.Pages {
		if err := ctx.Err(); err != nil {
			return added, err
		}

		img, err := a.addPage(ctx, entry.Year, doc, page, p)
		if err != nil {
			a.logger.Warn("page not added", "document", doc.Name, "file", p.Path, "error", err)
			added.Failed = append(added.Failed, imports.Item{
				File:       p.Path,
				Status:     imports.StatusFailed,
				DocumentID: &doc.ID,
				Error:      err.Error(),
			})
			continue
		}
		added.Images = append(added.Images, *img)
		page++

		if p.Attachment == nil {
			continue
		}

		att, err := a.attachments.Create(ctx, attachments.CreateCommand{
			DocumentID: doc.ID,
			ImageID:    &img.ID,
			Fields:     *p.Attachment,
			RawNotes:   notes.Format(*p.Attachment),
		})
		if err != nil {
			a.logger.Warn("attachment details not saved", "image", img.ID, "error", err)
			continue
		}
		added.Attachments = append(added.Attachments, *att)
	}

	a.logger.Info("document added",
		"id", doc.ID,
		"name", doc.Name,
		"reused", reused,
		"pages", len(added.Images),
		"attachments", len(added.Attachments),
	)
	return added, nil
}

// resolve returns the archived document identified by the entry name, filling
// an empty title from the entry, or creates a new one.
func (a *Archive) resolve(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, bool, error) {
	number, date, ok := filename.SplitName(strings.TrimSpace(cmd.Name))
	if !ok {
		doc, err := a.documents.Create(ctx, cmd)
		return doc, false, err
	}

	matches, err := a.documents.FindByNumberAndDate(ctx, number, filename.NormalizeDate(date))
	if err != nil {
		return nil, false, err
	}
	if len(matches) == 0 {
		doc, err := a.documents.Create(ctx, cmd)
		return doc, false, err
	}

	doc := &matches[0]
	if title := strings.TrimSpace(cmd.Title); title != "" && strings.TrimSpace(doc.Title) == "" {
		if doc, err = a.documents.Update(ctx, doc.ID, documents.UpdateCommand{Title: &title}); err != nil {
			return nil, false, err
		}
	}
	return doc, true, nil
}

func (a *Archive) addPage(ctx context.Context, year string, doc *documents.Document, page int, p Page) (*images.Image, error) {
	name := filepath.Base(p.Path)
	if !images.IsImageFile(name) {
		return nil, fmt.Errorf("%w: %s", imports.ErrUnsupportedFile, name)
	}

	// Import refuses a taken key, so the cleanup below only removes this copy.
	key := images.StorageKey(strings.TrimSpace(year), doc.ID, page, filepath.Ext(name))
	if _, err := a.copier.Import(ctx, key, p.Path); err != nil {
		return nil, fmt.Errorf("copy: %w", err)
	}

	img, err := a.images.Insert(ctx, images.InsertCommand{
		DocumentID:       doc.ID,
		Path:             key,
		OriginalFilename: name,
		PageNumber:       page,
	})
	if err != nil {
		if delErr := a.copier.Delete(ctx, key); delErr != nil {
			a.logger.Error("cleanup failed after insert error", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("insert: %w", err)
	}
	return img, nil
}

// MapHTTPStatus maps manual entry errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoPages) {
		return http.StatusBadRequest
	}
	return documents.MapHTTPStatus(err)
}
