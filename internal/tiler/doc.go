// Package tiler cuts a normalized square image into puzzle segments.
//
// For every grid size from MinGridSize to MaxGridSize the square is split
// into N×N segments laid out row-major. Segment widths and heights are
// floor(side/N); the last column and the last row are stretched to the
// image edge so the remainder pixels are absorbed there instead of being
// spread across the grid.
//
// Segments are named by row letter and 1-based column number: row 0 is
// "A", row 1 is "B", and the segment at row 2, column 4 is "C5". Files are
// written to
//
//	<root>/<image_id>/cropped_original.png
//	<root>/<image_id>/<N>x<N>/<name>.png
//
// Errors returned by this package are *Error values whose Kind is one of
// ErrDecode, ErrIO or ErrInvalid. A failure while writing stops the run;
// files already written are left in place.
package tiler
