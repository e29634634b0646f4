package attachments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/doc-archive/pkg/notes"
	"github.com/JaimeStill/doc-archive/pkg/repository"
	"github.com/google/uuid"
)

// LegacyResult counts the outcome of a legacy notes import.
type LegacyResult struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// LegacyImporter turns image notes strings written before notes were kept in
// sync with attachments into attachment rows. Images already linked to an
// attachment are ignored, so repeated runs create nothing new.
type LegacyImporter struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewLegacyImporter creates a LegacyImporter over db.
func NewLegacyImporter(db *sql.DB, logger *slog.Logger) *LegacyImporter {
	return &LegacyImporter{
		db:     db,
		logger: logger.With("system", "attachments.legacy"),
	}
}

type legacyNote struct {
	imageID    uuid.UUID
	documentID uuid.UUID
	raw        string
}

// Import parses every unlinked image note and creates an attachment for each
// note carrying a number or a title.
func (l *LegacyImporter) Import(ctx context.Context) (LegacyResult, error) {
	pending, err := repository.QueryMany(ctx, l.db,
		`SELECT i.id, i.document_id, i.notes FROM images i
		WHERE i.notes IS NOT NULL AND i.notes <> ''
		AND NOT EXISTS (SELECT 1 FROM attachments a WHERE a.image_id = i.id)
		ORDER BY i.created_at, i.page_number`,
		nil,
		func(s repository.Scanner) (legacyNote, error) {
			var n legacyNote
			err := s.Scan(&n.imageID, &n.documentID, &n.raw)
			return n, err
		},
	)
	if err != nil {
		return LegacyResult{}, fmt.Errorf("query legacy notes: %w", err)
	}

	result := LegacyResult{Scanned: len(pending)}

	_, err = repository.WithTx(ctx, l.db, func(tx *sql.Tx) (struct{}, error) {
		for _, n := range pending {
			cmd := CreateCommand{
				DocumentID: n.documentID,
				ImageID:    &n.imageID,
				Fields:     notes.Parse(n.raw),
				RawNotes:   n.raw,
			}
			if cmd.Validate() != nil {
				result.Skipped++
				continue
			}
			if err := insert(ctx, tx, uuid.New(), cmd); err != nil {
				return struct{}{}, fmt.Errorf("image %s: %w", n.imageID, err)
			}
			result.Created++
		}
		return struct{}{}, nil
	})
	if err != nil {
		return LegacyResult{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	l.logger.Info("legacy notes imported",
		"scanned", result.Scanned,
		"created", result.Created,
		"skipped", result.Skipped,
	)
	return result, nil
}

// SyncImageNotes makes the attachment linked to an image follow the image's
// notes string. Notes carrying a number or a title update the linked row or
// create it; cleared notes, or notes with neither, remove it. q is normally
// the transaction that writes the notes.
func SyncImageNotes(ctx context.Context, q repository.Querier, documentID, imageID uuid.UUID, raw *string) error {
	cmd := CreateCommand{DocumentID: documentID, ImageID: &imageID}
	if raw != nil {
		cmd.Fields = notes.Parse(*raw)
		cmd.RawNotes = *raw
	}

	if raw == nil || cmd.Validate() != nil {
		if _, err := q.ExecContext(ctx, `DELETE FROM attachments WHERE image_id = $1`, imageID); err != nil {
			return fmt.Errorf("unlink image notes: %w", err)
		}
		return nil
	}

	f := cmd.Fields
	res, err := q.ExecContext(ctx,
		`UPDATE attachments
		SET number = $1, date = $2, title = $3, department = $4, classification = $5, notes = $6, raw_notes = $7
		WHERE image_id = $8`,
		strings.TrimSpace(f.Number),
		strings.TrimSpace(f.Date),
		strings.TrimSpace(f.Title),
		strings.TrimSpace(f.Department),
		strings.TrimSpace(f.Classification),
		strings.TrimSpace(f.Notes),
		cmd.RawNotes,
		imageID,
	)
	if err != nil {
		return fmt.Errorf("update image attachment: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update image attachment: %w", err)
	}
	if n > 0 {
		return nil
	}

	if err := insert(ctx, q, uuid.New(), cmd); err != nil {
		return fmt.Errorf("link image notes: %w", err)
	}
	return nil
}
