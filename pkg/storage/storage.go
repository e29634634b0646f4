// Package storage provides the on-disk blob store for archived page images.
// Keys are slash-separated relative paths under a base directory.
package storage

import (
	"context"
	"errors"

	"github.com/JaimeStill/doc-archive/pkg/lifecycle"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates an empty key or a path traversal attempt.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrTooLarge indicates the source exceeds the configured file size limit.
	ErrTooLarge = errors.New("storage: file exceeds maximum size")

	// ErrInvalidSource indicates the import source is missing or not a regular file.
	ErrInvalidSource = errors.New("storage: invalid source file")

	// ErrExists indicates Import targeted a key that is already stored.
	ErrExists = errors.New("storage: key already exists")
)

// System defines the blob operations used by the archive.
type System interface {
	// Store writes data at key, replacing existing content.
	Store(ctx context.Context, key string, data []byte) error

	// Import copies the file at src to key and returns the number of bytes written.
	// Sources above the size limit return ErrTooLarge and leave no partial file.
	// An existing key is left untouched and returns ErrExists.
	Import(ctx context.Context, key, src string) (int64, error)

	// Retrieve returns the data stored at key.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Path resolves key to an absolute filesystem path.
	Path(ctx context.Context, key string) (string, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
