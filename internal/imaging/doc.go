// Package imaging supplies the image-side collaborators for line
// detection: loading, downscaling, and binarization into edge masks.
//
// The detection engines in internal/hough consume a boolean edge mask and
// know nothing about pixels, formats, or color. This package bridges the
// gap three ways:
//
//   - BinarizeSobel: gradient-threshold edge detection (via the bild
//     library) for photographs and filled diagrams.
//   - BinarizeDark / BinarizeBright: plain luminance cuts for inputs that
//     are already line art or already edge images.
//   - ImageCache / Downscale: decoding with reuse, and a size cap to keep
//     voting cost bounded on large inputs.
//
// # Coordinate System
//
// Masks are origin-normalized: mask coordinate (0,0) corresponds to the
// top-left pixel of the source image's bounds, whatever offset those
// bounds carry.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The binarization functions are
// stateless and may be called concurrently.
package imaging
