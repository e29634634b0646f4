package imports

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/internal/images"
	"github.com/JaimeStill/doc-archive/pkg/filename"
	"github.com/google/uuid"
)

// DocumentStore is the document side of the store used during import.
type DocumentStore interface {
	Create(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error)
	Update(ctx context.Context, id uuid.UUID, cmd documents.UpdateCommand) (*documents.Document, error)
	FindByNumberAndDate(ctx context.Context, number, date string) ([]documents.Document, error)
	FindByName(ctx context.Context, name string) ([]documents.Document, error)
}

// ImageStore is the page side of the store used during import.
type ImageStore interface {
	NextPageNumber(ctx context.Context, documentID uuid.UUID) (int, error)
	Insert(ctx context.Context, cmd images.InsertCommand) (*images.Image, error)
}

// Copier copies source files into page storage.
type Copier interface {
	Import(ctx context.Context, key, src string) (int64, error)
	Delete(ctx context.Context, key string) error
}

// Reconciler imports batches of page files.
type Reconciler struct {
	documents DocumentStore
	images    ImageStore
	copier    Copier
	parser    *filename.Parser
	logger    *slog.Logger
}

// New creates a Reconciler. A nil parser uses the default department table.
func New(docs DocumentStore, imgs ImageStore, copier Copier, parser *filename.Parser, logger *slog.Logger) *Reconciler {
	if parser == nil {
		parser = filename.NewParser(nil)
	}
	return &Reconciler{
		documents: docs,
		images:    imgs,
		copier:    copier,
		parser:    parser,
		logger:    logger.With("system", "imports"),
	}
}

// Handler returns the HTTP handler for the reconciler.
func (r *Reconciler) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Plan groups files without touching the store.
func (r *Reconciler) Plan(files []string) *Batch {
	return Plan(r.parser, files)
}

// Import persists files. Per-file copy or insert failures are recorded in
// the result and never abort the batch. Cancelling ctx stops before the next
// file; work already done is kept and Result.Cancelled is set. The returned
// error is reserved for failures that prevent the batch from starting.
func (r *Reconciler) Import(ctx context.Context, files []string, opts Options) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	batch := r.Plan(files)
	result := &Result{
		Total:        batch.Total,
		Unrecognized: batch.UnrecognizedCount(),
		Items:        make([]Item, 0, batch.Total),
	}

	r.logger.Info("import started",
		"files", batch.Total,
		"documents", len(batch.Documents),
		"unrecognized", result.Unrecognized,
	)

	for _, planned := range batch.Documents {
		if len(planned.Duplicates) > 0 {
			r.logger.Warn("multiple main pages for document, last one kept as main",
				"name", planned.Name,
				"displaced", planned.Duplicates,
			)
		}

		title := strings.TrimSpace(opts.Titles[planned.Number])
		if !r.importDocument(ctx, result, opts, planned.Files, func() (*documents.Document, bool, error) {
			return r.resolve(ctx, planned, title)
		}) {
			break
		}
	}

	for _, g := range batch.Unrecognized {
		if result.Cancelled {
			break
		}
		if !opts.IncludeUnrecognized {
			for _, f := range g.Files {
				result.add(Item{File: f.Path, Status: StatusSkipped, Error: "unrecognized file name"})
			}
			continue
		}

		if !r.importDocument(ctx, result, opts, g.Files, func() (*documents.Document, bool, error) {
			return r.resolveFallback(ctx, g)
		}) {
			break
		}
	}

	r.logger.Info("import finished",
		"imported", result.Imported,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"documents", result.Documents,
		"cancelled", result.Cancelled,
	)
	return result, nil
}

// importDocument resolves the target document and copies files into it as
// consecutive pages. It returns false when the batch was cancelled.
func (r *Reconciler) importDocument(
	ctx context.Context,
	result *Result,
	opts Options,
	files []PlannedFile,
	resolve func() (*documents.Document, bool, error),
) bool {
	if ctx.Err() != nil {
		result.Cancelled = true
		return false
	}

	doc, created, err := resolve()
	if err == nil {
		var page int
		page, err = r.images.NextPageNumber(ctx, doc.ID)
		if err == nil {
			return r.importPages(ctx, result, opts, doc, created, page, files)
		}
	}

	if ctx.Err() != nil {
		result.Cancelled = true
		return false
	}

	r.logger.Error("document not resolved", "files", len(files), "error", err)
	for _, f := range files {
		result.add(Item{File: f.Path, Status: StatusFailed, Error: err.Error()})
	}
	return true
}

func (r *Reconciler) importPages(
	ctx context.Context,
	result *Result,
	opts Options,
	doc *documents.Document,
	created bool,
	page int,
	files []PlannedFile,
) bool {
	result.Documents++
	if created {
		result.Created++
	} else {
		result.Reused++
	}

	for _, f := range files {
		if ctx.Err() != nil {
			result.Cancelled = true
			r.logger.Info("import cancelled", "document", doc.Name, "imported", result.Imported)
			return false
		}

		if err := r.importFile(ctx, opts, doc, page, f); err != nil {
			r.logger.Warn("image not imported", "file", f.Path, "document", doc.Name, "error", err)
			result.add(Item{File: f.Path, Status: StatusFailed, DocumentID: &doc.ID, Error: err.Error()})
			continue
		}

		result.add(Item{File: f.Path, Status: StatusImported, DocumentID: &doc.ID, PageNumber: page})
		page++
	}
	return true
}

func (r *Reconciler) importFile(ctx context.Context, opts Options, doc *documents.Document, page int, f PlannedFile) error {
	if !images.IsImageFile(f.Name) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, f.Name)
	}

	// Import refuses a taken key, so the cleanup below only removes this copy.
	key := images.StorageKey(opts.Year, doc.ID, page, filepath.Ext(f.Name))
	if _, err := r.copier.Import(ctx, key, f.Path); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	_, err := r.images.Insert(ctx, images.InsertCommand{
		DocumentID:       doc.ID,
		Path:             key,
		OriginalFilename: f.Name,
		PageNumber:       page,
		Sequence:         f.Sequence,
	})
	if err != nil {
		if delErr := r.copier.Delete(ctx, key); delErr != nil {
			r.logger.Error("cleanup failed after insert error", "key", key, "error", delErr)
		}
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// resolve finds the archived document for a planned one or creates it.
// An existing document with an empty title takes title when one is given.
func (r *Reconciler) resolve(ctx context.Context, planned PlannedDocument, title string) (*documents.Document, bool, error) {
	matches, err := r.documents.FindByNumberAndDate(ctx, planned.Number, planned.Date)
	if err != nil {
		return nil, false, fmt.Errorf("find %s: %w", planned.Name, err)
	}

	if len(matches) > 0 {
		doc := &matches[0]
		if title != "" && strings.TrimSpace(doc.Title) == "" {
			updated, err := r.documents.Update(ctx, doc.ID, documents.UpdateCommand{Title: &title})
			if err != nil {
				return nil, false, fmt.Errorf("update title of %s: %w", doc.Name, err)
			}
			doc = updated
		}
		r.logger.Debug("document reused", "id", doc.ID, "name", doc.Name)
		return doc, false, nil
	}

	doc, err := r.documents.Create(ctx, documents.CreateCommand{
		Name:        planned.Name,
		Date:        planned.Date,
		Title:       title,
		IssuingDept: planned.Department,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create %s: %w", planned.Name, err)
	}
	return doc, true, nil
}

func (r *Reconciler) resolveFallback(ctx context.Context, g UnrecognizedGroup) (*documents.Document, bool, error) {
	matches, err := r.documents.FindByName(ctx, g.Name)
	if err != nil {
		return nil, false, fmt.Errorf("find %s: %w", g.Name, err)
	}
	if len(matches) > 0 {
		return &matches[0], false, nil
	}

	doc, err := r.documents.Create(ctx, documents.CreateCommand{
		Name:        g.Name,
		IssuingDept: g.Department,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create %s: %w", g.Name, err)
	}
	return doc, true, nil
}
