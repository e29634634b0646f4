package images

import (
	"context"

	"github.com/google/uuid"
)

// System defines page image persistence and file access.
type System interface {
	Handler() *Handler

	// ListByDocument returns a document's pages in page order.
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Image, error)
	Find(ctx context.Context, id uuid.UUID) (*Image, error)

	// Data returns the page file and its content type.
	Data(ctx context.Context, id uuid.UUID) ([]byte, string, error)

	// Thumbnail returns the page thumbnail, rendering and storing it on first use.
	Thumbnail(ctx context.Context, id uuid.UUID) ([]byte, error)

	// Insert records a page whose file is already stored. Thumbnail failures
	// are logged and do not fail the insert. A taken page number returns ErrDuplicate.
	Insert(ctx context.Context, cmd InsertCommand) (*Image, error)

	// NextPageNumber returns one past the highest page number of a document,
	// or 1 for a document without pages.
	NextPageNumber(ctx context.Context, documentID uuid.UUID) (int, error)
	Count(ctx context.Context, documentID uuid.UUID) (int, error)

	// SetNotes replaces the notes string of a page and, in the same
	// transaction, the attachment parsed from it. Nil clears both.
	SetNotes(ctx context.Context, id uuid.UUID, notes *string) (*Image, error)

	// Delete removes the page row, its file, and its thumbnail.
	Delete(ctx context.Context, id uuid.UUID) error
}
