package sources

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

// Handler lists the configured providers.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

// NewHandler creates a sources HTTP handler.
func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With("handler", "sources"),
	}
}

// Routes returns the sources route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/sources",
		Tags:        []string{"Imports"},
		Description: "Import file sources",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.registry.List(r.Context()))
}
