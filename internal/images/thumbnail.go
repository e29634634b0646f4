package images

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Thumbnail bounds and JPEG quality.
const (
	ThumbnailWidth   = 150
	ThumbnailHeight  = 200
	ThumbnailQuality = 85
)

// RenderThumbnail decodes the page at src and encodes a JPEG that fits
// within ThumbnailWidth x ThumbnailHeight, preserving aspect ratio.
func RenderThumbnail(src string) ([]byte, error) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrThumbnail, src, err)
	}
	return encodeThumbnail(img)
}

func encodeThumbnail(img image.Image) ([]byte, error) {
	thumb := imaging.Fit(img, ThumbnailWidth, ThumbnailHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(ThumbnailQuality)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrThumbnail, err)
	}
	return buf.Bytes(), nil
}
