package hough

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"
)

// Segment is a bounded line segment detected by the probabilistic engine:
// integer pixel endpoints plus the (rho, theta) of the accumulator cell
// whose threshold crossing triggered its growth.
type Segment struct {
	X1, Y1 int
	X2, Y2 int
	Rho    float64
	Theta  float64
}

// Length returns the Euclidean distance between the endpoints.
func (s Segment) Length() float64 {
	return math.Hypot(float64(s.X2-s.X1), float64(s.Y2-s.Y1))
}

// DetectSegments runs the probabilistic Hough transform.
//
// Edge pixels are drawn uniformly at random without replacement. Each draw
// casts a full set of votes; when a cell first climbs strictly above
// threshold, the engine walks outward from the drawn pixel along that
// cell's line direction in both directions, tolerating up to maxGap
// consecutive non-edge pixels per direction. Every edge pixel touched by
// the walk is consumed, so the same line cannot trigger again off its own
// support. The walk's span becomes a Segment if its endpoint distance is
// at least minLength; shorter runs are discarded but their pixels stay
// consumed. The call returns when no eligible pixels remain.
//
// The engine mutates only its own per-call state; the mask is read-only.
// Output is deterministic for a fixed rng. Passing a nil rng selects a
// time-seeded source.
//
// Negative threshold, minLength, or maxGap fail with ErrInvalidConfig, as
// does a mask/space dimension mismatch. An empty mask yields an empty,
// non-nil slice.
func DetectSegments(mask *EdgeMask, space *ParameterSpace, threshold, minLength, maxGap int, rng *rand.Rand) ([]Segment, error) {
	if err := checkClassic(mask, space, threshold); err != nil {
		return nil, err
	}
	if minLength < 0 {
		return nil, fmt.Errorf("%w: min segment length %d must not be negative", ErrInvalidConfig, minLength)
	}
	if maxGap < 0 {
		return nil, fmt.Errorf("%w: max pixel gap %d must not be negative", ErrInvalidConfig, maxGap)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ws := newWorkingSet(mask)
	acc := NewAccumulator(space)
	segments := make([]Segment, 0)

	for ws.size() > 0 {
		p := ws.draw(rng)
		rhoBin, thetaBin, crossed := voteTracked(acc, space, p, threshold)
		if !crossed {
			continue
		}
		if seg, ok := growSegment(mask, ws, space, p, rhoBin, thetaBin, minLength, maxGap); ok {
			segments = append(segments, seg)
		}
	}
	return segments, nil
}

// voteTracked casts one pixel's votes and reports the first cell (lowest
// theta bin) whose count moved from exactly threshold to threshold+1 on
// this vote. Cells already above threshold do not retrigger.
func voteTracked(acc *Accumulator, space *ParameterSpace, p image.Point, threshold int) (rhoBin, thetaBin int, crossed bool) {
	fx, fy := float64(p.X), float64(p.Y)
	for j := 0; j < space.numTheta; j++ {
		rho := fx*space.cos[j] + fy*space.sin[j]
		i := space.rhoIndex(rho)
		if i < 0 || i >= space.numRho {
			continue
		}
		k := i*space.numTheta + j
		acc.cells[k]++
		if !crossed && acc.cells[k] == threshold+1 {
			rhoBin, thetaBin, crossed = i, j, true
		}
	}
	return rhoBin, thetaBin, crossed
}

// growSegment walks outward from the trigger pixel along the detected
// line's direction, consuming every edge pixel it touches, and returns the
// spanned segment if it is long enough.
func growSegment(mask *EdgeMask, ws *workingSet, space *ParameterSpace, start image.Point, rhoBin, thetaBin, minLength, maxGap int) (Segment, bool) {
	// The line direction is perpendicular to the (cos, sin) normal.
	dx := -space.sin[thetaBin]
	dy := space.cos[thetaBin]

	a := walkDirection(mask, ws, start, -dx, -dy, maxGap)
	b := walkDirection(mask, ws, start, dx, dy, maxGap)

	seg := Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
	seg.Rho, seg.Theta = space.ToContinuous(rhoBin, thetaBin)
	if seg.Length() < float64(minLength) {
		return Segment{}, false
	}
	return seg, true
}

// walkDirection steps along (dx, dy) from start, one pixel per step,
// until maxGap consecutive misses or the image border. It returns the last
// edge pixel reached (start itself if the first steps already miss) and
// removes every edge pixel it visits from the working set.
func walkDirection(mask *EdgeMask, ws *workingSet, start image.Point, dx, dy float64, maxGap int) image.Point {
	last := start
	gap := 0
	for t := 1; ; t++ {
		x := int(math.Round(float64(start.X) + float64(t)*dx))
		y := int(math.Round(float64(start.Y) + float64(t)*dy))
		if x < 0 || x >= mask.width || y < 0 || y >= mask.height {
			break
		}
		if mask.bits[y*mask.width+x] {
			last = image.Point{X: x, Y: y}
			ws.remove(last)
			gap = 0
		} else {
			gap++
			if gap > maxGap {
				break
			}
		}
	}
	return last
}

// workingSet is the pool of edge pixels still eligible as sampling
// triggers. Removal is O(1) swap-delete; the slice plus index map keep
// draws uniform and the whole structure deterministic for a fixed rng,
// since pixels are inserted in row-major order.
type workingSet struct {
	pts []image.Point
	idx map[image.Point]int
}

func newWorkingSet(mask *EdgeMask) *workingSet {
	ws := &workingSet{idx: make(map[image.Point]int)}
	for y := 0; y < mask.height; y++ {
		for x := 0; x < mask.width; x++ {
			if mask.bits[y*mask.width+x] {
				p := image.Point{X: x, Y: y}
				ws.idx[p] = len(ws.pts)
				ws.pts = append(ws.pts, p)
			}
		}
	}
	return ws
}

func (s *workingSet) size() int { return len(s.pts) }

// draw removes and returns a uniformly random pixel.
func (s *workingSet) draw(rng *rand.Rand) image.Point {
	k := rng.Intn(len(s.pts))
	p := s.pts[k]
	s.removeAt(k)
	return p
}

// remove deletes p if it is still in the set.
func (s *workingSet) remove(p image.Point) {
	if k, ok := s.idx[p]; ok {
		s.removeAt(k)
	}
}

func (s *workingSet) removeAt(k int) {
	last := len(s.pts) - 1
	delete(s.idx, s.pts[k])
	if k != last {
		moved := s.pts[last]
		s.pts[k] = moved
		s.idx[moved] = k
	}
	s.pts = s.pts[:last]
}
