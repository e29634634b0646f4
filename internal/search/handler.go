package search

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

// Handler provides the search endpoint.
type Handler struct {
	matcher *Matcher
	logger  *slog.Logger
}

// NewHandler creates a search HTTP handler.
func NewHandler(m *Matcher, logger *slog.Logger) *Handler {
	return &Handler{
		matcher: m,
		logger:  logger.With("handler", "search"),
	}
}

// Routes returns the search route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/search",
		Tags:        []string{"Search"},
		Description: "Document and attachment search",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Search},
		},
	}
}

// Search handles POST /search with a Request body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	field, err := documents.ParseField(req.Field)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	results, err := h.matcher.Search(r.Context(), req.Term, field)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}
