package imaging

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// EncodePNG writes img to w as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(pngCompression))
}

// SavePNG writes img to path as a PNG, replacing any existing file.
// The parent directory must already exist.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(pngCompression)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
