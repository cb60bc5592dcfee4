package tiler

import (
	"fmt"
	"image"
)

// Box is a half-open pixel rectangle [Left,Right)×[Top,Bottom).
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// BoxOf converts r to a Box.
func BoxOf(r image.Rectangle) Box {
	return Box{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// Rect converts b to an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// Width is Right-Left.
func (b Box) Width() int { return b.Right - b.Left }

// Height is Bottom-Top.
func (b Box) Height() int { return b.Bottom - b.Top }

// Segment is one cell of a grid.
type Segment struct {
	Row int `json:"row"`
	Col int `json:"col"`
	Box
}

// Name returns the segment's row-letter/column-number name, e.g. "C5".
func (s Segment) Name() string {
	return SegmentName(s.Row, s.Col)
}

// FileName returns Name with the ".png" extension.
func (s Segment) FileName() string {
	return s.Name() + ".png"
}

// SegmentName names the segment at row, col (both 0-based). The letter
// encodes the row and the number the column: SegmentName(2, 4) == "C5".
func SegmentName(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+rune(row), col+1)
}

// GridDirName returns the directory name for grid size n, e.g. "4x4".
func GridDirName(n int) string {
	return fmt.Sprintf("%dx%d", n, n)
}

// Plan computes the n×n partition of a width×height image in row-major
// order.
//
// Every cell is floor(width/n) wide and floor(height/n) tall, except that
// the last column extends to width and the last row to height. The cells
// therefore cover the image exactly once.
func Plan(width, height, n int) ([]Segment, error) {
	if n < 1 {
		return nil, invalidError("plan", "grid size %d must be at least 1", n)
	}
	if n > 26 {
		return nil, invalidError("plan", "grid size %d has more rows than letters", n)
	}
	if width < n || height < n {
		return nil, invalidError("plan", "image %dx%d is too small for a %s grid", width, height, GridDirName(n))
	}

	segW, segH := width/n, height/n
	segments := make([]Segment, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			left, top := col*segW, row*segH
			right, bottom := left+segW, top+segH
			if col == n-1 {
				right = width
			}
			if row == n-1 {
				bottom = height
			}
			segments = append(segments, Segment{
				Row: row,
				Col: col,
				Box: Box{Left: left, Top: top, Right: right, Bottom: bottom},
			})
		}
	}
	return segments, nil
}
