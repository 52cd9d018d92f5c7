// Package hough implements the Hough transform for straight-line detection
// in binary edge images.
//
// The package operates on an EdgeMask (a W x H boolean grid produced by an
// upstream edge detector) and offers two engines:
//
//   - Classic: exhaustive voting over every edge pixel, producing infinite
//     lines as (rho, theta) pairs with their vote counts. See DetectLines.
//   - Probabilistic: randomized sampling with incremental voting and local
//     segment growth, producing bounded segments with concrete pixel
//     endpoints. See DetectSegments.
//
// # Parametrization
//
// Lines use the normal form rho = x*cos(theta) + y*sin(theta), where rho is
// the perpendicular distance from the image origin (top-left corner) and
// theta is the angle of that perpendicular. Theta ranges over the half
// circle [0, pi), since (rho, theta) and (-rho, theta+pi) name the same
// line; rho ranges over [-D, D] with D the image diagonal.
//
// ParameterSpace fixes the discretization of this plane. Rho bin assignment
// rounds half-to-even, so a value landing exactly on a bin boundary always
// resolves to the same bin regardless of platform float-to-int behavior.
//
// # Accumulator Ownership
//
// Each detect call allocates its own Accumulator (and, for the
// probabilistic engine, its own working pixel set) and discards it on
// return. Nothing is shared between calls, so concurrent calls over
// different masks are safe without locking. The mask itself is only read.
//
// # Peak Semantics
//
// Peaks reports every accumulator cell whose count strictly exceeds the
// threshold, with no suppression of neighboring cells. A physical line
// whose votes smear across adjacent bins is therefore reported once per
// qualifying cell; callers wanting one result per physical line must
// cluster the output themselves.
//
// # Complexity
//
// Classic voting costs O(E * nTheta) for E edge pixels. The probabilistic
// engine consumes pixels as it tests them, so dense collinear regions are
// retired after a single growth pass rather than voted exhaustively.
package hough
