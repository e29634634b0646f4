package attachments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/doc-archive/pkg/filename"
	"github.com/JaimeStill/doc-archive/pkg/query"
	"github.com/JaimeStill/doc-archive/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an attachment system backed by db.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "attachments"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Attachment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)`, cmd.DocumentID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check document: %w", err)
	}
	if !exists {
		return nil, ErrDocumentNotFound
	}

	id := uuid.New()
	if err := insert(ctx, r.db, id, cmd); err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("attachment created", "id", a.ID, "document_id", a.DocumentID, "number", a.Number)
	return a, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Attachment, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAttachment)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Attachment, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentID", documentID).
		BuildAll()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanAttachment)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `DELETE FROM attachments WHERE id = $1`, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("attachment deleted", "id", id)
	return nil
}

func (r *repo) Search(ctx context.Context, field Field, term string) ([]Attachment, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Attachment{}, nil
	}

	qb := query.NewBuilder(projection, query.SortField{Field: "Number"}, defaultSort)

	switch field {
	case FieldNumber:
		qb.WherePrefix("Number", &term)
	case FieldTitle:
		qb.WhereContains("Title", &term)
	default:
		return []Attachment{}, nil
	}

	q, args := qb.BuildAll()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanAttachment)
	if err != nil {
		return nil, fmt.Errorf("search attachments: %w", err)
	}

	if field == FieldNumber {
		filename.RankByNumber(items, term, func(a Attachment) string { return a.Number })
	}
	return items, nil
}

func insert(ctx context.Context, q repository.Querier, id uuid.UUID, cmd CreateCommand) error {
	f := cmd.Fields
	_, err := q.ExecContext(ctx,
		`INSERT INTO attachments(id, document_id, image_id, number, date, title, department, classification, notes, raw_notes, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id,
		cmd.DocumentID,
		cmd.ImageID,
		strings.TrimSpace(f.Number),
		strings.TrimSpace(f.Date),
		strings.TrimSpace(f.Title),
		strings.TrimSpace(f.Department),
		strings.TrimSpace(f.Classification),
		strings.TrimSpace(f.Notes),
		cmd.RawNotes,
		time.Now().UTC(),
	)
	return err
}
