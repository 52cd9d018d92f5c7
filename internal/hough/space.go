package hough

import (
	"fmt"
	"math"
)

// ParameterSpace defines the discretization of the (rho, theta) plane for a
// given image size. It is immutable after construction and may be shared by
// any number of concurrent detect calls.
//
// Theta covers the half circle [0, pi) in steps of the configured angular
// resolution. Rho covers [-D, D] where D is the image diagonal, so every
// line through the image has a representable perpendicular distance.
type ParameterSpace struct {
	width    int
	height   int
	rhoRes   float64
	thetaRes float64

	maxDist  float64 // D, the image diagonal (ceil)
	numRho   int
	numTheta int

	// Per-theta-bin trig tables, computed once so the vote inner loop
	// does no transcendental math.
	sin []float64
	cos []float64
}

// NewParameterSpace builds the discretization for an image of the given
// dimensions.
//
// Parameters:
//   - width, height: Image dimensions in pixels. Must be positive.
//   - rhoRes: Distance resolution in pixels. Must be positive.
//   - thetaRes: Angular resolution in radians. Must be positive.
//
// Returns ErrInvalidConfig (wrapped) if any parameter is out of range.
func NewParameterSpace(width, height int, rhoRes, thetaRes float64) (*ParameterSpace, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image dimensions %dx%d must be positive", ErrInvalidConfig, width, height)
	}
	if rhoRes <= 0 {
		return nil, fmt.Errorf("%w: rho resolution %g must be positive", ErrInvalidConfig, rhoRes)
	}
	if thetaRes <= 0 {
		return nil, fmt.Errorf("%w: theta resolution %g must be positive", ErrInvalidConfig, thetaRes)
	}

	maxDist := math.Ceil(math.Sqrt(float64(width*width + height*height)))
	numRho := int(math.Ceil(2*maxDist/rhoRes)) + 1
	numTheta := int(math.Ceil(math.Pi / thetaRes))

	s := &ParameterSpace{
		width:    width,
		height:   height,
		rhoRes:   rhoRes,
		thetaRes: thetaRes,
		maxDist:  maxDist,
		numRho:   numRho,
		numTheta: numTheta,
		sin:      make([]float64, numTheta),
		cos:      make([]float64, numTheta),
	}
	for j := 0; j < numTheta; j++ {
		theta := float64(j) * thetaRes
		s.sin[j] = math.Sin(theta)
		s.cos[j] = math.Cos(theta)
	}
	return s, nil
}

// Width returns the image width the space was built for.
func (s *ParameterSpace) Width() int { return s.width }

// Height returns the image height the space was built for.
func (s *ParameterSpace) Height() int { return s.height }

// NumRho returns the number of rho bins.
func (s *ParameterSpace) NumRho() int { return s.numRho }

// NumTheta returns the number of theta bins.
func (s *ParameterSpace) NumTheta() int { return s.numTheta }

// MaxDistance returns D, the rho range half-width (the image diagonal).
func (s *ParameterSpace) MaxDistance() float64 { return s.maxDist }

// ToBins discretizes a continuous (rho, theta) pair to bin indices.
// Values on a bin boundary round half-to-even; results are clamped to the
// valid index ranges so callers can pass any value within [-D, D] x [0, pi).
func (s *ParameterSpace) ToBins(rho, theta float64) (i, j int) {
	i = clampIndex(int(math.RoundToEven((rho+s.maxDist)/s.rhoRes)), s.numRho)
	j = clampIndex(int(math.RoundToEven(theta/s.thetaRes)), s.numTheta)
	return i, j
}

// ToContinuous maps bin indices back to the continuous (rho, theta) values
// at the bin centers. Inverse of ToBins up to quantization: a round trip
// moves a value by at most half a bin width on each axis.
func (s *ParameterSpace) ToContinuous(i, j int) (rho, theta float64) {
	return float64(i)*s.rhoRes - s.maxDist, float64(j) * s.thetaRes
}

// rhoIndex discretizes a rho value for theta bin j during voting. It is
// the hot path of Vote, so it skips the theta half of ToBins.
func (s *ParameterSpace) rhoIndex(rho float64) int {
	return int(math.RoundToEven((rho + s.maxDist) / s.rhoRes))
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
