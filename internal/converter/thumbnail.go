package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	DefaultThumbnailWidth = 300
	thumbnailJPEGQuality  = 85
	maxCoverPixels        = 100 * 1000 * 1000 // 100 megapixels
)

// CoverThumbnail scales a raster cover image down to width and re-encodes it
// as JPEG on a white background. Images narrower than width are not enlarged.
func CoverThumbnail(data []byte, width int) ([]byte, error) {
	if width <= 0 {
		width = DefaultThumbnailWidth
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	pixels := uint64(cfg.Width) * uint64(cfg.Height)
	if pixels > maxCoverPixels {
		return nil, fmt.Errorf("image too large to decode: %dx%d (%d pixels)", cfg.Width, cfg.Height, pixels)
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	processed := src
	if src.Bounds().Dx() > width {
		processed = imaging.Resize(src, width, 0, imaging.Lanczos)
	}

	b := processed.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, processed, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(thumbnailJPEGQuality)); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return buf.Bytes(), nil
}
