package hough

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Line is an infinite line detected by the classic engine, in normal form
// rho = x*cos(theta) + y*sin(theta), together with its accumulator votes.
type Line struct {
	Rho   float64
	Theta float64
	Votes int
}

// DetectLines runs the classic exhaustive Hough transform: every edge
// pixel votes for every theta bin, then all cells with more than threshold
// votes are returned as lines, strongest first (ties in bin order).
//
// A mask with no edge pixels yields an empty, non-nil slice. A negative
// threshold or a mask whose dimensions differ from the parameter space's
// fails with ErrInvalidConfig before any voting happens.
func DetectLines(mask *EdgeMask, space *ParameterSpace, threshold int) ([]Line, error) {
	if err := checkClassic(mask, space, threshold); err != nil {
		return nil, err
	}
	acc := Transform(mask, space)
	return linesFromPeaks(acc.Peaks(threshold), space), nil
}

// Transform votes every edge pixel of the mask into a fresh accumulator
// and returns it. Exposed separately so callers can inspect the raw grid
// or extract peaks at several thresholds without re-voting.
func Transform(mask *EdgeMask, space *ParameterSpace) *Accumulator {
	acc := NewAccumulator(space)
	for y := 0; y < mask.height; y++ {
		row := mask.bits[y*mask.width : (y+1)*mask.width]
		for x, edge := range row {
			if edge {
				acc.Vote(x, y)
			}
		}
	}
	return acc
}

// TransformParallel is Transform with the voting loop partitioned across
// workers by row strip. Each worker votes into its own accumulator; the
// partial grids are summed into one before the result is returned, so peak
// extraction sees exactly the counts a sequential transform would produce.
//
// The context is checked between rows; cancellation aborts the transform
// and returns the context's error with no partial result.
func TransformParallel(ctx context.Context, mask *EdgeMask, space *ParameterSpace, workers int) (*Accumulator, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: workers %d must be at least 1", ErrInvalidConfig, workers)
	}
	if workers == 1 {
		return Transform(mask, space), nil
	}
	if workers > mask.height {
		workers = mask.height
	}

	parts := make([]*Accumulator, workers)
	g, ctx := errgroup.WithContext(ctx)
	rowsPer := (mask.height + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		y0 := w * rowsPer
		y1 := min(y0+rowsPer, mask.height)
		g.Go(func() error {
			acc := NewAccumulator(space)
			for y := y0; y < y1; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				row := mask.bits[y*mask.width : (y+1)*mask.width]
				for x, edge := range row {
					if edge {
						acc.Vote(x, y)
					}
				}
			}
			parts[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := parts[0]
	for _, p := range parts[1:] {
		total.Merge(p)
	}
	return total, nil
}

// DetectLinesParallel is DetectLines using TransformParallel for the
// voting phase. Output is identical to DetectLines for the same inputs.
func DetectLinesParallel(ctx context.Context, mask *EdgeMask, space *ParameterSpace, threshold, workers int) ([]Line, error) {
	if err := checkClassic(mask, space, threshold); err != nil {
		return nil, err
	}
	acc, err := TransformParallel(ctx, mask, space, workers)
	if err != nil {
		return nil, err
	}
	return linesFromPeaks(acc.Peaks(threshold), space), nil
}

func checkClassic(mask *EdgeMask, space *ParameterSpace, threshold int) error {
	if threshold < 0 {
		return fmt.Errorf("%w: vote threshold %d must not be negative", ErrInvalidConfig, threshold)
	}
	if mask.width != space.width || mask.height != space.height {
		return fmt.Errorf("%w: mask %dx%d does not match parameter space %dx%d",
			ErrInvalidConfig, mask.width, mask.height, space.width, space.height)
	}
	return nil
}

func linesFromPeaks(peaks []Peak, space *ParameterSpace) []Line {
	lines := make([]Line, len(peaks))
	for k, p := range peaks {
		rho, theta := space.ToContinuous(p.RhoBin, p.ThetaBin)
		lines[k] = Line{Rho: rho, Theta: theta, Votes: p.Votes}
	}
	return lines
}
