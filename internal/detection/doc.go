// Package detection is the image-level line detection API.
//
// It wraps the voting engines in internal/hough with the binarization
// collaborators in internal/imaging, turning an image.Image directly into
// structured line or segment results:
//
//   - DetectLines: classic Hough transform; every candidate is an
//     infinite line in (rho, theta) normal form with its vote count.
//   - DetectSegments: probabilistic Hough transform; every candidate is a
//     bounded segment with pixel endpoints, annotated with length, angle,
//     midpoint color, approximate thickness, and optional arrow-head
//     flags.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward, Y increasing downward. Theta is
// the angle of a line's perpendicular from the origin, in [0, pi); a
// horizontal line therefore has theta = pi/2.
//
// # Candidate Semantics
//
// Classic results report one candidate per accumulator cell above the
// vote threshold, with no merging of adjacent cells; a strong physical
// line may appear as several near-identical candidates. MaxResults caps
// the list after the strongest-first sort.
//
// # Reproducibility
//
// DetectSegments draws edge pixels at random. Supply Options.Rand with a
// fixed seed to make runs repeatable; leaving it nil seeds from the clock.
package detection
