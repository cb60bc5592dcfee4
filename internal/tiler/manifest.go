package tiler

import (
	"encoding/json"
	"image"
	"os"
	"path"

	"github.com/ironsheep/puzzle-tiler/internal/imaging"
)

// Manifest describes an image's artifact set for the game client. Paths are
// slash-separated and relative to the image directory.
type Manifest struct {
	ImageID  string         `json:"image_id"`
	Original ManifestSize   `json:"original"`
	CropBox  Box            `json:"crop_box"`
	Side     int            `json:"side"`
	Cropped  string         `json:"cropped"`
	Grids    []ManifestGrid `json:"grids"`
}

// ManifestSize is a width/height pair.
type ManifestSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ManifestGrid lists the segments of one grid size.
type ManifestGrid struct {
	Size     int               `json:"size"`
	Dir      string            `json:"dir"`
	Segments []ManifestSegment `json:"segments"`
}

// ManifestSegment is one tile with its bounds in the square and the average
// color, usable as a placeholder until the tile image loads.
type ManifestSegment struct {
	Name string `json:"name"`
	File string `json:"file"`
	Segment
	Color imaging.ColorResult `json:"color"`
}

// BuildManifest describes res, sampling colors from square. Only grids
// present in res are included.
func BuildManifest(square image.Image, res *Result) (*Manifest, error) {
	m := &Manifest{
		ImageID:  res.ImageID,
		Original: ManifestSize{Width: res.OriginalWidth, Height: res.OriginalHeight},
		CropBox:  res.CropBox,
		Side:     res.Side,
		Cropped:  CroppedFileName,
	}

	b := square.Bounds()
	for _, g := range res.Grids {
		segments, err := Plan(b.Dx(), b.Dy(), g.Size)
		if err != nil {
			return nil, err
		}

		dir := GridDirName(g.Size)
		grid := ManifestGrid{Size: g.Size, Dir: dir}
		for _, seg := range segments {
			c, err := imaging.AverageColor(square, seg.Rect())
			if err != nil {
				return nil, invalidError("manifest", "segment %s: %v", seg.Name(), err)
			}
			grid.Segments = append(grid.Segments, ManifestSegment{
				Name:    seg.Name(),
				File:    path.Join(dir, seg.FileName()),
				Segment: seg,
				Color:   *c,
			})
		}
		m.Grids = append(m.Grids, grid)
	}

	return m, nil
}

// WriteManifest writes m to file as indented JSON, replacing any existing
// file.
func WriteManifest(file string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return invalidError("manifest", "%v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(file, data, 0o644); err != nil {
		return ioError("write", file, err)
	}
	return nil
}
