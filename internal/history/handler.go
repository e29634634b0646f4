package history

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

// Handler provides the search history endpoint.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a history HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "history"),
	}
}

// Routes returns the history route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/search/history",
		Tags:        []string{"Search"},
		Description: "Recent search terms",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Recent},
		},
	}
}

// Recent handles GET /search/history?limit=N.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.sys.Recent(r.Context(), limit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
