package attachments

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for attachments.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates an attachments HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "attachments"),
	}
}

// Routes returns the attachment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Attachments"},
		Description: "Papers filed within a document",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/documents/{id}/attachments", Handler: h.ListByDocument},
			{Method: "POST", Pattern: "/documents/{id}/attachments", Handler: h.Create},
			{Method: "DELETE", Pattern: "/attachments/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) ListByDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	items, err := h.sys.ListByDocument(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Create handles POST /documents/{id}/attachments. The document id in the
// path overrides any id in the body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	cmd.DocumentID = id

	a, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
