package imports

import (
	"errors"
	"net/http"
)

// Import errors.
var (
	ErrNoFiles         = errors.New("no files to import")
	ErrUnsupportedFile = errors.New("unsupported image file")
	ErrSourceNotFound  = errors.New("import source not found")
)

// MapHTTPStatus maps import errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFiles):
		return http.StatusBadRequest
	case errors.Is(err, ErrSourceNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
