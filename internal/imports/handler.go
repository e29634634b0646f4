package imports

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/doc-archive/internal/sources"
	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

// Request selects the files of an import: explicit paths (files or
// directories) or, when Paths is empty, the named source provider.
type Request struct {
	Paths   []string `json:"paths,omitempty"`
	Source  string   `json:"source,omitempty"`
	Options Options  `json:"options"`
}

// Handler provides the import endpoints.
type Handler struct {
	reconciler *Reconciler
	sources    *sources.Registry
	defaults   Options
	logger     *slog.Logger
}

// NewHandler creates an imports HTTP handler without source providers.
func NewHandler(r *Reconciler, logger *slog.Logger) *Handler {
	return &Handler{
		reconciler: r,
		sources:    sources.NewRegistry(),
		logger:     logger.With("handler", "imports"),
	}
}

// WithSources sets the providers a request may name.
func (h *Handler) WithSources(reg *sources.Registry) *Handler {
	h.sources = reg
	return h
}

// WithDefaults sets options applied when a request leaves them unset.
func (h *Handler) WithDefaults(opts Options) *Handler {
	h.defaults = opts
	return h
}

// Routes returns the import route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/imports",
		Tags:        []string{"Imports"},
		Description: "Batch import of scanned pages",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Import},
			{Method: "POST", Pattern: "/preview", Handler: h.Preview},
		},
	}
}

// Import handles POST /imports and returns the run's Result.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	req, files, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.reconciler.Import(r.Context(), files, req.Options)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Preview handles POST /imports/preview and returns the planned grouping.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	_, files, ok := h.decode(w, r)
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.reconciler.Plan(files))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Request, []string, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return req, nil, false
	}

	if req.Options.Year == "" {
		req.Options.Year = h.defaults.Year
	}
	if !req.Options.IncludeUnrecognized {
		req.Options.IncludeUnrecognized = h.defaults.IncludeUnrecognized
	}

	files, err := h.files(r, req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return req, nil, false
	}
	if len(files) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFiles)
		return req, nil, false
	}
	return req, files, true
}

func (h *Handler) files(r *http.Request, req Request) ([]string, error) {
	if len(req.Paths) > 0 {
		files, err := sources.CollectFiles(r.Context(), req.Paths)
		if errors.Is(err, sources.ErrNotFound) {
			return nil, errors.Join(ErrSourceNotFound, err)
		}
		return files, err
	}

	if req.Source == "" {
		return nil, ErrNoFiles
	}

	p, err := h.sources.Get(req.Source)
	if err != nil {
		return nil, errors.Join(ErrSourceNotFound, err)
	}

	files, err := p.Files(r.Context())
	if errors.Is(err, sources.ErrNotFound) {
		return nil, errors.Join(ErrSourceNotFound, err)
	}
	return files, err
}
