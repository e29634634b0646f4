package history

import (
	"errors"
	"net/http"
)

// ErrEmptyTerm is returned when recording a blank search term.
var ErrEmptyTerm = errors.New("search term is empty")

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyTerm) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
