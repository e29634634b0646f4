package images

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Extensions accepted as page images, lower-cased with the leading dot.
var Extensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// IsImageFile reports whether name carries a supported image extension.
func IsImageFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// StorageKey returns the storage key for a page file:
// "[<year>/]doc_<id>/image_<page:04d><ext>". The extension is lower-cased.
func StorageKey(year string, documentID uuid.UUID, page int, ext string) string {
	key := fmt.Sprintf("doc_%s/image_%04d%s", documentID, page, strings.ToLower(ext))
	if year = strings.TrimSpace(year); year != "" {
		key = year + "/" + key
	}
	return key
}

// ThumbnailKey returns the storage key of the thumbnail for an image.
func ThumbnailKey(id uuid.UUID) string {
	return fmt.Sprintf("thumbnails/%s_thumb.jpg", id)
}

// ContentType returns the MIME type for a stored page key.
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
