package documents

import (
	"context"

	"github.com/JaimeStill/doc-archive/pkg/pagination"
	"github.com/google/uuid"
)

// System defines document persistence and lookup.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)

	// ListByYear returns every document dated in year, newest first.
	ListByYear(ctx context.Context, year string) ([]Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error)

	// Delete removes the document, its image rows and files, and its attachments.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByNumberAndDate returns documents whose name identifies (number, date),
	// matching "<number> في <date>" exactly, as a prefix, or through a separator
	// variant. Oldest first.
	FindByNumberAndDate(ctx context.Context, number, date string) ([]Document, error)

	// FindByName returns documents whose name equals name exactly, oldest first.
	FindByName(ctx context.Context, name string) ([]Document, error)

	// Search returns documents whose field contains term (case-sensitive).
	// Name results rank exact number matches first, then number prefixes,
	// then other substring hits, each tier in numeric order.
	Search(ctx context.Context, field Field, term string) ([]Document, error)
}
