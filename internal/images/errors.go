// Package images stores the scanned pages of archived documents and serves
// their files and thumbnails.
package images

import (
	"errors"
	"net/http"
)

// Domain errors for image operations.
var (
	ErrNotFound      = errors.New("image not found")
	ErrDuplicate     = errors.New("page number already taken")
	ErrInvalidImage  = errors.New("invalid image")
	ErrThumbnail     = errors.New("thumbnail generation failed")
	ErrFileNotStored = errors.New("image file missing from storage")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrFileNotStored):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
