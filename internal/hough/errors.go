package hough

import "errors"

// ErrInvalidConfig is returned when detection parameters are out of range:
// non-positive resolutions or image dimensions, or negative thresholds,
// segment lengths, or gap tolerances. It is always detected before any
// voting state is allocated, so a failed call produces no partial results.
var ErrInvalidConfig = errors.New("invalid configuration")
