package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/doc-archive/internal/attachments"
	"github.com/JaimeStill/doc-archive/pkg/query"
	"github.com/JaimeStill/doc-archive/pkg/repository"
	"github.com/JaimeStill/doc-archive/pkg/storage"
	"github.com/google/uuid"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates an image system over db and the page file store.
func New(db *sql.DB, store storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "images"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Image, error) {
	q, args := query.
		NewBuilder(projection, pageOrder).
		WhereEquals("DocumentID", documentID).
		BuildAll()

	imgs, err := repository.QueryMany(ctx, r.db, q, args, scanImage)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	return imgs, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Image, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("ID", id)

	img, err := repository.QueryOne(ctx, r.db, q, args, scanImage)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &img, nil
}

func (r *repo) Data(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	img, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data, err := r.storage.Retrieve(ctx, img.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: %s", ErrFileNotStored, img.Path)
		}
		return nil, "", fmt.Errorf("retrieve image: %w", err)
	}
	return data, ContentType(img.Path), nil
}

func (r *repo) Thumbnail(ctx context.Context, id uuid.UUID) ([]byte, error) {
	img, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := r.storage.Retrieve(ctx, ThumbnailKey(id))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("retrieve thumbnail: %w", err)
	}

	return r.renderThumbnail(ctx, img)
}

func (r *repo) Insert(ctx context.Context, cmd InsertCommand) (*Image, error) {
	if strings.TrimSpace(cmd.Path) == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidImage)
	}
	if cmd.PageNumber < 1 {
		return nil, fmt.Errorf("%w: page number must be positive", ErrInvalidImage)
	}

	id := uuid.New()
	q := `INSERT INTO images(id, document_id, path, original_filename, page_number, sequence, sides, notes, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, q,
		id,
		cmd.DocumentID,
		cmd.Path,
		cmd.OriginalFilename,
		cmd.PageNumber,
		cmd.Sequence,
		1,
		cmd.Notes,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	img, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.renderThumbnail(ctx, img); err != nil {
		r.logger.Warn("thumbnail skipped", "id", img.ID, "path", img.Path, "error", err)
	}

	r.logger.Debug("image inserted", "id", img.ID, "document_id", img.DocumentID, "page", img.PageNumber)
	return img, nil
}

func (r *repo) NextPageNumber(ctx context.Context, documentID uuid.UUID) (int, error) {
	var last sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(page_number) FROM images WHERE document_id = $1`,
		documentID,
	).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("max page number: %w", err)
	}
	return int(last.Int64) + 1, nil
}

func (r *repo) Count(ctx context.Context, documentID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM images WHERE document_id = $1`,
		documentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return n, nil
}

func (r *repo) SetNotes(ctx context.Context, id uuid.UUID, notes *string) (*Image, error) {
	if notes != nil && strings.TrimSpace(*notes) == "" {
		notes = nil
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var documentID uuid.UUID
		if err := tx.QueryRowContext(ctx,
			`SELECT document_id FROM images WHERE id = $1`, id,
		).Scan(&documentID); err != nil {
			return struct{}{}, err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE images SET notes = $1 WHERE id = $2`, notes, id); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, attachments.SyncImageNotes(ctx, tx, documentID, id, notes)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("image notes updated", "id", id, "cleared", notes == nil)
	return r.Find(ctx, id)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `DELETE FROM images WHERE id = $1`, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	for _, key := range []string{img.Path, ThumbnailKey(id)} {
		if err := r.storage.Delete(ctx, key); err != nil {
			r.logger.Error("storage cleanup failed", "key", key, "error", err)
		}
	}

	r.logger.Info("image deleted", "id", id, "document_id", img.DocumentID)
	return nil
}

func (r *repo) renderThumbnail(ctx context.Context, img *Image) ([]byte, error) {
	src, err := r.storage.Path(ctx, img.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve image path: %w", err)
	}

	data, err := RenderThumbnail(src)
	if err != nil {
		return nil, err
	}

	if err := r.storage.Store(ctx, ThumbnailKey(img.ID), data); err != nil {
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}
	return data, nil
}
