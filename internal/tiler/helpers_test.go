package tiler

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/puzzle-tiler/internal/imaging"
)

// coordinateImage encodes each pixel's position in its color.
func coordinateImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), uint8(x*7 + y*3), 255})
		}
	}
	return img
}

// writePNG encodes img to name inside dir and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// reassemble draws every segment file of an n×n grid back onto one canvas.
func reassemble(t *testing.T, dir string, side, n int) *image.NRGBA {
	t.Helper()
	segments, err := Plan(side, side, n)
	require.NoError(t, err)

	canvas := image.NewNRGBA(image.Rect(0, 0, side, side))
	for _, s := range segments {
		tile, err := imaging.Open(filepath.Join(dir, s.FileName()))
		require.NoError(t, err, s.Name())
		require.Equal(t, s.Width(), tile.Bounds().Dx(), "width of %s", s.Name())
		require.Equal(t, s.Height(), tile.Bounds().Dy(), "height of %s", s.Name())
		draw.Draw(canvas, s.Rect(), tile, tile.Bounds().Min, draw.Src)
	}
	return canvas
}

// requireSamePixels compares two images pixel by pixel.
func requireSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds().Size(), got.Bounds().Size())
	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			wr, wg, wbl, wa := want.At(wb.Min.X+x, wb.Min.Y+y).RGBA()
			gr, gg, gbl, ga := got.At(gb.Min.X+x, gb.Min.Y+y).RGBA()
			if wr != gr || wg != gg || wbl != gbl || wa != ga {
				t.Fatalf("pixel (%d,%d): got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					x, y, gr>>8, gg>>8, gbl>>8, ga>>8, wr>>8, wg>>8, wbl>>8, wa>>8)
			}
		}
	}
}

// loadPNG decodes the image file at path.
func loadPNG(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err, path)
	return img
}
