package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/doc-archive/pkg/query"
	"github.com/JaimeStill/doc-archive/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.NewProjectionMap("", "search_history", "h").
	Project("id", "ID").
	Project("term", "Term").
	Project("field", "Field").
	Project("created_at", "CreatedAt")

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.ID, &e.Term, &e.Field, &e.CreatedAt)
	return e, err
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a search history system backed by db.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "history"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Record(ctx context.Context, term, field string) (*Entry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	e := Entry{
		ID:        uuid.New(),
		Term:      term,
		Field:     field,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO search_history(id, term, field, created_at) VALUES($1, $2, $3, $4)`,
		e.ID, e.Term, e.Field, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record search: %w", err)
	}

	r.logger.Debug("search recorded", "term", e.Term, "field", e.Field)
	return &e, nil
}

func (r *repo) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	q, args := query.
		NewBuilder(projection, query.SortField{Field: "CreatedAt", Descending: true}).
		BuildPage(1, limit)

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	return entries, nil
}
