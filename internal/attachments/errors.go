package attachments

import (
	"errors"
	"net/http"
)

// Domain errors for attachment operations.
var (
	ErrNotFound          = errors.New("attachment not found")
	ErrDuplicate         = errors.New("attachment already exists for image")
	ErrInvalidAttachment = errors.New("attachment requires a number or a title")
	ErrDocumentNotFound  = errors.New("document not found")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidAttachment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
