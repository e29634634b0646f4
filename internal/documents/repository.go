package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/doc-archive/internal/images"
	"github.com/JaimeStill/doc-archive/pkg/filename"
	"github.com/JaimeStill/doc-archive/pkg/pagination"
	"github.com/JaimeStill/doc-archive/pkg/query"
	"github.com/JaimeStill/doc-archive/pkg/repository"
	"github.com/JaimeStill/doc-archive/pkg/storage"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document system backed by db. Image files of deleted
// documents are removed from store.
func New(db *sql.DB, store storage.System, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Title", "IssuingDept")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("ID", id)

	doc, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (r *repo) ListByYear(ctx context.Context, year string) ([]Document, error) {
	qb := query.NewBuilder(projection, defaultSort)
	Filters{Year: &year}.Apply(qb)

	q, args := qb.BuildAll()
	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents by year: %w", err)
	}
	return docs, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	now := time.Now().UTC()

	q := `INSERT INTO documents(id, name, date, title, issuing_dept, classification, legal_paragraph, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, q,
		id,
		strings.TrimSpace(cmd.Name),
		strings.TrimSpace(cmd.Date),
		strings.TrimSpace(cmd.Title),
		strings.TrimSpace(cmd.IssuingDept),
		strings.TrimSpace(cmd.Classification),
		strings.TrimSpace(cmd.LegalParagraph),
		now,
		now,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("document created", "id", doc.ID, "name", doc.Name)
	return doc, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, strings.TrimSpace(*value))
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	set("name", cmd.Name)
	set("date", cmd.Date)
	set("title", cmd.Title)
	set("issuing_dept", cmd.IssuingDept)
	set("classification", cmd.Classification)
	set("legal_paragraph", cmd.LegalParagraph)

	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	q := fmt.Sprintf("UPDATE documents SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, args...)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("document updated", "id", doc.ID, "name", doc.Name)
	return doc, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	type stored struct {
		id   uuid.UUID
		path string
	}

	files, err := repository.QueryMany(ctx, r.db,
		`SELECT id, path FROM images WHERE document_id = $1`,
		[]any{id},
		func(s repository.Scanner) (stored, error) {
			var f stored
			err := s.Scan(&f.id, &f.path)
			return f, err
		},
	)
	if err != nil {
		return fmt.Errorf("query document images: %w", err)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `DELETE FROM documents WHERE id = $1`, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	for _, f := range files {
		for _, key := range []string{f.path, images.ThumbnailKey(f.id)} {
			if err := r.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
				r.logger.Error("storage cleanup failed", "key", key, "error", err)
			}
		}
	}

	r.logger.Info("document deleted", "id", id, "images", len(files))
	return nil
}

func (r *repo) FindByNumberAndDate(ctx context.Context, number, date string) ([]Document, error) {
	number = filename.ToASCIIDigits(strings.TrimSpace(number))
	date = strings.TrimSpace(date)
	if number == "" {
		return []Document{}, nil
	}

	q, args := query.
		NewBuilder(projection, query.SortField{Field: "CreatedAt"}).
		WherePrefix("Name", &number).
		BuildAll()

	candidates, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents by number: %w", err)
	}

	matches := make([]Document, 0, len(candidates))
	for _, d := range candidates {
		if identifies(d, number, date) {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

func (r *repo) FindByName(ctx context.Context, name string) ([]Document, error) {
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "CreatedAt"}).
		WhereEquals("Name", strings.TrimSpace(name)).
		BuildAll()

	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents by name: %w", err)
	}
	return docs, nil
}

// identifies reports whether d is the document for (number, date).
func identifies(d Document, number, date string) bool {
	canonical := filename.DocumentName(number, date)
	if d.Name == canonical || strings.HasPrefix(d.Name, canonical+" ") {
		return true
	}

	n, dt, ok := filename.SplitName(d.Name)
	if !ok || filename.ToASCIIDigits(n) != number {
		return false
	}
	return filename.NormalizeDate(dt) == filename.NormalizeDate(date) || d.Date == date
}

func (r *repo) Search(ctx context.Context, field Field, term string) ([]Document, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Document{}, nil
	}

	col, ok := fieldColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	q, args := query.
		NewBuilder(projection, query.SortField{Field: col}, query.SortField{Field: "Name"}).
		WhereContains(col, &term).
		BuildAll()

	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	if field == FieldName {
		filename.RankByNumber(docs, term, Document.Number)
	}
	return docs, nil
}
