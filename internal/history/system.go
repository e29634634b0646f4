package history

import "context"

// System records and lists searches.
type System interface {
	Handler() *Handler

	Record(ctx context.Context, term, field string) (*Entry, error)

	// Recent returns the latest entries, newest first. A non-positive limit
	// selects DefaultLimit.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
