package tiler

import (
	"encoding/json"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"masterpiece_001.png", "masterpiece_001"},
		{"/tmp/images/photo.jpeg", "photo"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{"/a/b/.hidden", ".hidden"},
		{"dir.with.dots/pic.webp", "pic"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageID(tt.path))
		})
	}
}

// listTree returns every file under root as slash-separated relative paths.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func expectedLayout(imageID string) []string {
	files := []string{imageID + "/" + CroppedFileName}
	for n := MinGridSize; n <= MaxGridSize; n++ {
		segments, _ := Plan(n, n, n)
		for _, s := range segments {
			files = append(files, imageID+"/"+GridDirName(n)+"/"+s.FileName())
		}
	}
	sort.Strings(files)
	return files
}

func TestProcess_EndToEnd(t *testing.T) {
	src := coordinateImage(120, 90)
	input := writePNG(t, t.TempDir(), "scene.png", src)
	root := t.TempDir()

	res, err := Process(input, root, Options{})
	require.NoError(t, err)

	assert.Equal(t, "scene", res.ImageID)
	assert.Equal(t, 120, res.OriginalWidth)
	assert.Equal(t, 90, res.OriginalHeight)
	assert.Equal(t, Box{Left: 15, Top: 0, Right: 105, Bottom: 90}, res.CropBox)
	assert.Equal(t, 90, res.Side)
	assert.Empty(t, res.ManifestPath)

	require.Len(t, res.Grids, MaxGridSize-MinGridSize+1)
	for i, g := range res.Grids {
		assert.Equal(t, MinGridSize+i, g.Size)
		assert.Len(t, g.Files, g.Size*g.Size)
	}

	assert.Equal(t, expectedLayout("scene"), listTree(t, root))
	assert.Len(t, res.Files(), 1+9+16+25+36+49+64)

	// The cropped original is the centered 90x90 window of the source
	square := src.SubImage(image.Rect(15, 0, 105, 90))
	requireSamePixels(t, square, loadPNG(t, res.CroppedPath))

	// 3x3: nine 30x30 tiles
	for _, s := range mustPlan(t, 90, 3) {
		tile := loadPNG(t, filepath.Join(root, "scene", "3x3", s.FileName()))
		assert.Equal(t, image.Pt(30, 30), tile.Bounds().Size(), s.Name())
	}

	// 8x8: 11px cells, last row and column stretched to 90
	for _, s := range mustPlan(t, 90, 8) {
		tile := loadPNG(t, filepath.Join(root, "scene", "8x8", s.FileName()))
		want := image.Pt(11, 11)
		if s.Col == 7 {
			want.X = 13
		}
		if s.Row == 7 {
			want.Y = 13
		}
		assert.Equal(t, want, tile.Bounds().Size(), s.Name())
	}

	for n := MinGridSize; n <= MaxGridSize; n++ {
		requireSamePixels(t, square, reassemble(t, GridDir(root, "scene", n), 90, n))
	}
}

func mustPlan(t *testing.T, side, n int) []Segment {
	t.Helper()
	segments, err := Plan(side, side, n)
	require.NoError(t, err)
	return segments
}

func TestProcess_Idempotent(t *testing.T) {
	input := writePNG(t, t.TempDir(), "again.png", coordinateImage(64, 80))
	root := t.TempDir()

	first, err := Process(input, root, Options{})
	require.NoError(t, err)
	firstTree := listTree(t, root)
	firstA1, err := os.ReadFile(filepath.Join(root, "again", "5x5", "A1.png"))
	require.NoError(t, err)

	second, err := Process(input, root, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstTree, listTree(t, root))

	secondA1, err := os.ReadFile(filepath.Join(root, "again", "5x5", "A1.png"))
	require.NoError(t, err)
	assert.Equal(t, firstA1, secondA1)
}

func TestProcess_AlphaAndGrayInputs(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 20, 30))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i)
	}
	transparent := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	for i := 0; i < len(transparent.Pix); i += 4 {
		transparent.Pix[i], transparent.Pix[i+3] = 200, 0
	}

	tests := []struct {
		name string
		img  image.Image
		want color.NRGBA // pixel (0,0) of the cropped square
	}{
		{"gray", gray, color.NRGBA{100, 100, 100, 255}},
		{"transparent", transparent, color.NRGBA{200, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writePNG(t, t.TempDir(), tt.name+".png", tt.img)
			root := t.TempDir()

			res, err := Process(input, root, Options{})
			require.NoError(t, err)
			assert.Equal(t, 20, res.Side)

			cropped := loadPNG(t, res.CroppedPath)
			r, g, b, a := cropped.At(0, 0).RGBA()
			got := color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcess_DecodeError(t *testing.T) {
	input := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(input, []byte("definitely not a png"), 0o644))
	root := t.TempDir()

	res, err := Process(input, root, Options{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Empty(t, listTree(t, root), "no output for undecodable input")
}

func TestProcess_MissingInput(t *testing.T) {
	_, err := Process(filepath.Join(t.TempDir(), "missing.png"), t.TempDir(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestProcess_TooSmall(t *testing.T) {
	input := writePNG(t, t.TempDir(), "tiny.png", coordinateImage(7, 50))
	root := t.TempDir()

	_, err := Process(input, root, Options{})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, listTree(t, root))
}

func TestProcess_StopsAtFirstFailedGrid(t *testing.T) {
	input := writePNG(t, t.TempDir(), "partial.png", coordinateImage(40, 40))
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "partial"), 0o755))
	// A file where the 5x5 directory belongs
	require.NoError(t, os.WriteFile(filepath.Join(root, "partial", "5x5"), nil, 0o644))

	res, err := Process(input, root, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)

	require.NotNil(t, res)
	require.Len(t, res.Grids, 2)
	assert.Equal(t, 3, res.Grids[0].Size)
	assert.Equal(t, 4, res.Grids[1].Size)
	assert.FileExists(t, res.CroppedPath)
	assert.FileExists(t, filepath.Join(root, "partial", "4x4", "D4.png"))
	assert.NoDirExists(t, filepath.Join(root, "partial", "6x6"))
}

func TestProcess_Manifest(t *testing.T) {
	// Left half red, right half blue
	src := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := color.NRGBA{255, 0, 0, 255}
			if x >= 30 {
				c = color.NRGBA{0, 0, 255, 255}
			}
			src.SetNRGBA(x, y, c)
		}
	}
	input := writePNG(t, t.TempDir(), "flag.png", src)
	root := t.TempDir()

	res, err := Process(input, root, Options{Manifest: true})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "flag", ManifestFileName), res.ManifestPath)
	assert.Equal(t, res.ManifestPath, res.Files()[len(res.Files())-1])

	data, err := os.ReadFile(res.ManifestPath)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, "flag", m.ImageID)
	assert.Equal(t, ManifestSize{60, 60}, m.Original)
	assert.Equal(t, CroppedFileName, m.Cropped)
	require.Len(t, m.Grids, 6)

	g4 := m.Grids[1]
	assert.Equal(t, 4, g4.Size)
	assert.Equal(t, "4x4", g4.Dir)
	require.Len(t, g4.Segments, 16)

	a1 := g4.Segments[0]
	assert.Equal(t, "A1", a1.Name)
	assert.Equal(t, "4x4/A1.png", a1.File)
	assert.Equal(t, Box{0, 0, 15, 15}, a1.Box)
	assert.Equal(t, "#ff0000", a1.Color.Hex)

	d4 := g4.Segments[15]
	assert.Equal(t, "D4", d4.Name)
	assert.Equal(t, 3, d4.Row)
	assert.Equal(t, 3, d4.Col)
	assert.Equal(t, "#0000ff", d4.Color.Hex)
}

func TestResult_FilesOrder(t *testing.T) {
	res := &Result{
		CroppedPath: "c.png",
		Grids: []GridResult{
			{Size: 3, Files: []string{"3a", "3b"}},
			{Size: 4, Files: []string{"4a"}},
		},
		ManifestPath: "m.json",
	}
	assert.Equal(t, []string{"c.png", "3a", "3b", "4a", "m.json"}, res.Files())
	assert.Empty(t, (&Result{}).Files())
}
