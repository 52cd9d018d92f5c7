package hough

import "sort"

// Accumulator is the voting grid over a discretized (rho, theta) plane.
// Cells hold non-negative vote counts; each count is bounded above by the
// number of edge pixels voted so far.
//
// An Accumulator belongs to exactly one detect call. It is not safe for
// concurrent mutation; parallel transforms use one accumulator per worker
// and merge afterwards (see TransformParallel).
type Accumulator struct {
	space *ParameterSpace
	cells []int
}

// Peak is one accumulator cell above the extraction threshold.
type Peak struct {
	RhoBin   int
	ThetaBin int
	Votes    int
}

// NewAccumulator creates a zeroed grid for the given parameter space.
func NewAccumulator(space *ParameterSpace) *Accumulator {
	return &Accumulator{
		space: space,
		cells: make([]int, space.numRho*space.numTheta),
	}
}

// Vote casts the full set of votes for one edge pixel: for every theta bin
// it computes rho = x*cos(theta) + y*sin(theta), discretizes it, and
// increments that cell. One call lands exactly NumTheta votes.
func (a *Accumulator) Vote(x, y int) {
	s := a.space
	fx, fy := float64(x), float64(y)
	for j := 0; j < s.numTheta; j++ {
		rho := fx*s.cos[j] + fy*s.sin[j]
		i := s.rhoIndex(rho)
		if i >= 0 && i < s.numRho {
			a.cells[i*s.numTheta+j]++
		}
	}
}

// Count returns the vote count of cell (rhoBin, thetaBin).
func (a *Accumulator) Count(rhoBin, thetaBin int) int {
	return a.cells[rhoBin*a.space.numTheta+thetaBin]
}

// Merge adds another accumulator's counts into this one. Both must share
// the same parameter space shape.
func (a *Accumulator) Merge(other *Accumulator) {
	for k, v := range other.cells {
		a.cells[k] += v
	}
}

// Peaks returns every cell whose count strictly exceeds threshold, sorted
// by descending count with ties broken by ascending (rhoBin, thetaBin).
// The scan is pure: repeated calls on an unmodified accumulator return
// identical sequences, and lowering the threshold only ever adds cells.
//
// No non-maximum suppression is applied; adjacent cells fed by the same
// physical line are each reported when they individually qualify.
func (a *Accumulator) Peaks(threshold int) []Peak {
	nt := a.space.numTheta
	peaks := make([]Peak, 0)
	for k, v := range a.cells {
		if v > threshold {
			peaks = append(peaks, Peak{
				RhoBin:   k / nt,
				ThetaBin: k % nt,
				Votes:    v,
			})
		}
	}
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].Votes != peaks[j].Votes {
			return peaks[i].Votes > peaks[j].Votes
		}
		if peaks[i].RhoBin != peaks[j].RhoBin {
			return peaks[i].RhoBin < peaks[j].RhoBin
		}
		return peaks[i].ThetaBin < peaks[j].ThetaBin
	})
	return peaks
}
