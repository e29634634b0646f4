package archive

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

// Handler provides the manual entry endpoint.
type Handler struct {
	archive *Archive
	logger  *slog.Logger
}

// NewHandler creates a manual entry HTTP handler.
func NewHandler(a *Archive, logger *slog.Logger) *Handler {
	return &Handler{
		archive: a,
		logger:  logger.With("handler", "archive"),
	}
}

// Routes returns the manual entry route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Tags:        []string{"Documents"},
		Description: "Manual document entry",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Add},
		},
	}
}

// Add handles POST /documents with an Entry body.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	added, err := h.archive.AddDocument(r.Context(), entry)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, added)
}
