package images

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for page images.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates an images HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "images"),
	}
}

// Routes returns the image endpoints. Document-scoped listing lives under
// /documents/{id}/images.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Images"},
		Description: "Scanned page images",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/documents/{id}/images", Handler: h.ListByDocument},
			{Method: "GET", Pattern: "/images/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/images/{id}/data", Handler: h.Data},
			{Method: "GET", Pattern: "/images/{id}/thumbnail", Handler: h.Thumbnail},
			{Method: "PUT", Pattern: "/images/{id}/notes", Handler: h.SetNotes},
			{Method: "DELETE", Pattern: "/images/{id}", Handler: h.Delete},
		},
	}
}

// ListByDocument handles GET /documents/{id}/images.
func (h *Handler) ListByDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	imgs, err := h.sys.ListByDocument(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, imgs)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	img, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, img)
}

// Data handles GET /images/{id}/data and streams the page file.
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	data, contentType, err := h.sys.Data(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondBytes(w, contentType, data)
}

func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	data, err := h.sys.Thumbnail(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondBytes(w, "image/jpeg", data)
}

func (h *Handler) SetNotes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Notes *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	img, err := h.sys.SetNotes(r.Context(), id, body.Notes)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, img)
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
