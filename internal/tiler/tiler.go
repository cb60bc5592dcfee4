package tiler

import (
	"image"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/puzzle-tiler/internal/imaging"
)

// GridDir returns the directory a grid of size n is written to.
func GridDir(root, imageID string, n int) string {
	return filepath.Join(root, imageID, GridDirName(n))
}

// Tile splits square into an n×n grid and writes one PNG per segment to
// GridDir(root, imageID, n), creating directories as needed and replacing
// existing files.
//
// The returned paths are in row-major order. On a write failure the paths
// written so far are returned together with the error.
func Tile(square image.Image, n int, root, imageID string) ([]string, error) {
	b := square.Bounds()
	if b.Dx() != b.Dy() {
		return nil, invalidError("tile", "image is %dx%d, not square", b.Dx(), b.Dy())
	}

	segments, err := Plan(b.Dx(), b.Dy(), n)
	if err != nil {
		return nil, err
	}

	dir := GridDir(root, imageID, n)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ioError("mkdir", dir, err)
	}

	paths := make([]string, 0, len(segments))
	for _, seg := range segments {
		tile, err := imaging.CropRegion(square, seg.Rect())
		if err != nil {
			return paths, invalidError("crop", "segment %s: %v", seg.Name(), err)
		}

		path := filepath.Join(dir, seg.FileName())
		if err := imaging.SavePNG(tile, path); err != nil {
			return paths, ioError("write", path, err)
		}
		paths = append(paths, path)
	}

	logrus.WithFields(logrus.Fields{
		"image_id": imageID,
		"grid":     GridDirName(n),
		"files":    len(paths),
	}).Debugf("Created grid in %s", dir)

	return paths, nil
}
