// Package imaging provides the image operations behind puzzle tiling.
//
// It wraps github.com/disintegration/imaging for decoding, cropping and PNG
// encoding, and adds the square normalization used before an image is cut
// into puzzle segments.
//
// # Coordinate System
//
// All pixel coordinates are 0-based and relative to the image origin:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Regions are half-open: Min is inclusive, Max is exclusive
//
// Functions that return images always return them with Bounds().Min at (0,0).
//
// # Normalization
//
// Normalize converts any decoded image to opaque 8-bit RGB and cuts the
// largest centered square out of it. Pixels are copied, never resampled. When
// the margin to discard is odd, the extra pixel comes off the right or bottom
// edge.
//
// # Error Handling
//
// Decoding failures wrap ErrDecode. File system failures are wrapped with
// their original error so errors.Is works against io/fs sentinels.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package imaging
