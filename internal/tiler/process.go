package tiler

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/puzzle-tiler/internal/imaging"
)

// Grid sizes produced for every image.
const (
	MinGridSize = 3
	MaxGridSize = 8
)

// File names written next to the grid directories.
const (
	CroppedFileName  = "cropped_original.png"
	ManifestFileName = "manifest.json"
)

// Options controls optional outputs of Process.
type Options struct {
	// Manifest writes manifest.json describing every segment.
	Manifest bool
}

// GridResult lists the files written for one grid size.
type GridResult struct {
	Size  int      `json:"size"`
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

// Result describes everything written for one input image.
type Result struct {
	ImageID        string       `json:"image_id"`
	Dir            string       `json:"dir"`
	OriginalWidth  int          `json:"original_width"`
	OriginalHeight int          `json:"original_height"`
	CropBox        Box          `json:"crop_box"`
	Side           int          `json:"side"`
	CroppedPath    string       `json:"cropped_path"`
	Grids          []GridResult `json:"grids"`
	ManifestPath   string       `json:"manifest_path,omitempty"`
}

// Files returns every file written: the cropped square first, then each grid
// in order, then the manifest if one was written.
func (r *Result) Files() []string {
	var files []string
	if r.CroppedPath != "" {
		files = append(files, r.CroppedPath)
	}
	for _, g := range r.Grids {
		files = append(files, g.Files...)
	}
	if r.ManifestPath != "" {
		files = append(files, r.ManifestPath)
	}
	return files
}

// ImageID derives the output folder name from an input path: the base name
// without its final extension. A dot-file with no other dot keeps its name.
func ImageID(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return base[:len(base)-len(ext)]
}

// Process decodes the image at inputPath and writes its full artifact set
// under outputRoot/ImageID(inputPath).
func Process(inputPath, outputRoot string, opts Options) (*Result, error) {
	img, err := imaging.Open(inputPath)
	if err != nil {
		if errors.Is(err, imaging.ErrDecode) {
			return nil, &Error{Op: "decode", Path: inputPath, Kind: ErrDecode, Err: err}
		}
		return nil, ioError("open", inputPath, err)
	}
	return ProcessImage(img, ImageID(inputPath), outputRoot, opts)
}

// ProcessImage normalizes an already decoded image and writes the cropped
// square followed by every grid from MinGridSize to MaxGridSize.
//
// If a step fails, the returned Result describes what was written before the
// failure.
func ProcessImage(img image.Image, imageID, outputRoot string, opts Options) (*Result, error) {
	b := img.Bounds()
	square := imaging.Normalize(img)
	side := square.Bounds().Dx()
	if side < MaxGridSize {
		return nil, invalidError("normalize", "square side %d is smaller than the largest grid size %d", side, MaxGridSize)
	}

	log := logrus.WithField("image_id", imageID)
	dir := filepath.Join(outputRoot, imageID)
	res := &Result{
		ImageID:        imageID,
		Dir:            dir,
		OriginalWidth:  b.Dx(),
		OriginalHeight: b.Dy(),
		CropBox:        BoxOf(imaging.SquareBox(b.Dx(), b.Dy())),
		Side:           side,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, ioError("mkdir", dir, err)
	}

	cropped := filepath.Join(dir, CroppedFileName)
	if err := imaging.SavePNG(square, cropped); err != nil {
		return res, ioError("write", cropped, err)
	}
	res.CroppedPath = cropped

	log.WithFields(logrus.Fields{
		"original": formatSize(b.Dx(), b.Dy()),
		"cropped":  formatSize(side, side),
	}).Infof("Saved cropped original to %s", cropped)

	for n := MinGridSize; n <= MaxGridSize; n++ {
		files, err := Tile(square, n, outputRoot, imageID)
		if err != nil {
			return res, err
		}
		res.Grids = append(res.Grids, GridResult{
			Size:  n,
			Dir:   GridDir(outputRoot, imageID, n),
			Files: files,
		})
	}

	if opts.Manifest {
		m, err := BuildManifest(square, res)
		if err != nil {
			return res, err
		}
		path := filepath.Join(dir, ManifestFileName)
		if err := WriteManifest(path, m); err != nil {
			return res, err
		}
		res.ManifestPath = path
	}

	log.WithField("files", len(res.Files())).Info("Image processed")
	return res, nil
}

func formatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
