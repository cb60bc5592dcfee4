package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// ToRGB converts img to opaque 8-bit RGB stored as *image.NRGBA.
//
// The straight (non-premultiplied) color of every pixel is kept and its alpha
// forced to 0xff, so transparency is dropped rather than composited onto a
// background. Gray and paletted images expand to three equal or looked-up
// channels. The result always has Bounds().Min == (0,0).
//
// An opaque NRGBA is written by image/png as truecolor without an alpha
// channel, which is what makes it the canonical 3-channel form here.
func ToRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// SquareBox returns the largest centered square inside a width×height image.
//
// The side is min(width, height). The origin is floor((width-side)/2),
// floor((height-side)/2), so when the margin is odd the extra pixel is
// discarded from the right or bottom edge.
func SquareBox(width, height int) image.Rectangle {
	side := width
	if height < side {
		side = height
	}
	left := (width - side) / 2
	top := (height - side) / 2
	return image.Rect(left, top, left+side, top+side)
}

// Normalize returns the centered square crop of img in canonical RGB.
//
// Pixels are copied, never resampled. The returned image is re-based so its
// bounds start at (0,0) regardless of the source origin.
func Normalize(img image.Image) *image.NRGBA {
	rgb := ToRGB(img)
	b := rgb.Bounds()
	return imaging.Crop(rgb, SquareBox(b.Dx(), b.Dy()))
}
