package attachments

import (
	"context"

	"github.com/google/uuid"
)

// System defines attachment persistence and search.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Attachment, error)
	Find(ctx context.Context, id uuid.UUID) (*Attachment, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Search matches attachment numbers exactly or by prefix for FieldNumber,
	// and titles by substring for FieldTitle. Other fields return no results.
	Search(ctx context.Context, field Field, term string) ([]Attachment, error)
}
