package hough

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestDetectLines_EmptyMask(t *testing.T) {
	space := mustSpace(t, 50, 50, 1.0, math.Pi/180)
	mask := mustMask(t, 50, 50, nil)

	lines, err := DetectLines(mask, space, 0)
	if err != nil {
		t.Fatalf("DetectLines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines for an empty mask, got %d", len(lines))
	}
}

func TestDetectLines_NegativeThreshold(t *testing.T) {
	space := mustSpace(t, 50, 50, 1.0, math.Pi/180)
	mask := mustMask(t, 50, 50, nil)

	if _, err := DetectLines(mask, space, -1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for negative threshold, got %v", err)
	}
}

func TestDetectLines_DimensionMismatch(t *testing.T) {
	space := mustSpace(t, 50, 50, 1.0, math.Pi/180)
	mask := mustMask(t, 40, 50, nil)

	if _, err := DetectLines(mask, space, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for mismatched dimensions, got %v", err)
	}
}

func TestDetectLines_HorizontalLine(t *testing.T) {
	space := mustSpace(t, 40, 40, 1.0, math.Pi/180)
	var pixels [][2]int
	for x := 0; x < 30; x++ {
		pixels = append(pixels, [2]int{x, 12})
	}
	mask := mustMask(t, 40, 40, pixels)

	lines, err := DetectLines(mask, space, 20)
	if err != nil {
		t.Fatalf("DetectLines failed: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}

	// Strongest first: a horizontal line is theta = pi/2, rho = y.
	best := lines[0]
	if best.Votes != 30 {
		t.Errorf("best line has %d votes, want 30", best.Votes)
	}
	if math.Abs(best.Theta-math.Pi/2) > math.Pi/180 {
		t.Errorf("best line theta = %g, want ~pi/2", best.Theta)
	}
	if math.Abs(best.Rho-12) > 1 {
		t.Errorf("best line rho = %g, want ~12", best.Rho)
	}
}

func TestDetectLines_ConcreteDiagonal(t *testing.T) {
	// Pixels (1,2), (2,3), (3,4) lie on y = x+1. On the theta grid
	// {0, pi/4, pi/2, 3pi/4} the projection rho = x*cos + y*sin is
	// constant only at theta = 3pi/4 (rho = (y-x)/sqrt2 ~ 0.707), so that
	// column holds the top cell and threshold 2 must surface it.
	space := mustSpace(t, 6, 6, 1.0, math.Pi/4)
	mask := mustMask(t, 6, 6, [][2]int{{1, 2}, {2, 3}, {3, 4}})

	acc := Transform(mask, space)
	bestPerTheta := make([]int, space.NumTheta())
	for i := 0; i < space.NumRho(); i++ {
		for j := 0; j < space.NumTheta(); j++ {
			if acc.Count(i, j) > bestPerTheta[j] {
				bestPerTheta[j] = acc.Count(i, j)
			}
		}
	}
	for j := 0; j < 3; j++ {
		if bestPerTheta[3] <= bestPerTheta[j] {
			t.Errorf("theta column 3pi/4 peaks at %d, not above column %d's %d",
				bestPerTheta[3], j, bestPerTheta[j])
		}
	}

	lines, err := DetectLines(mask, space, 2)
	if err != nil {
		t.Fatalf("DetectLines failed: %v", err)
	}
	found := false
	for _, l := range lines {
		if math.Abs(l.Theta-3*math.Pi/4) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Errorf("no candidate at theta = 3pi/4 among %d lines", len(lines))
	}
}

func TestTransformParallel_MatchesSequential(t *testing.T) {
	space := mustSpace(t, 60, 45, 1.0, math.Pi/90)
	mask := mustMask(t, 60, 45, nil)
	rng := rand.New(rand.NewSource(7))
	for k := 0; k < 400; k++ {
		mask.Set(rng.Intn(60), rng.Intn(45), true)
	}

	seq := Transform(mask, space)
	par, err := TransformParallel(context.Background(), mask, space, 4)
	if err != nil {
		t.Fatalf("TransformParallel failed: %v", err)
	}

	for i := 0; i < space.NumRho(); i++ {
		for j := 0; j < space.NumTheta(); j++ {
			if seq.Count(i, j) != par.Count(i, j) {
				t.Fatalf("cell (%d,%d): sequential %d, parallel %d", i, j, seq.Count(i, j), par.Count(i, j))
			}
		}
	}
}

func TestDetectLinesParallel_MatchesSequential(t *testing.T) {
	space := mustSpace(t, 40, 40, 1.0, math.Pi/180)
	var pixels [][2]int
	for x := 0; x < 30; x++ {
		pixels = append(pixels, [2]int{x, 12})
		pixels = append(pixels, [2]int{20, x})
	}
	mask := mustMask(t, 40, 40, pixels)

	seq, err := DetectLines(mask, space, 15)
	if err != nil {
		t.Fatalf("DetectLines failed: %v", err)
	}
	par, err := DetectLinesParallel(context.Background(), mask, space, 15, 3)
	if err != nil {
		t.Fatalf("DetectLinesParallel failed: %v", err)
	}

	if len(seq) != len(par) {
		t.Fatalf("sequential found %d lines, parallel %d", len(seq), len(par))
	}
	for k := range seq {
		if seq[k] != par[k] {
			t.Errorf("line %d differs: %+v vs %+v", k, seq[k], par[k])
		}
	}
}

func TestTransformParallel_Canceled(t *testing.T) {
	space := mustSpace(t, 40, 40, 1.0, math.Pi/180)
	var pixels [][2]int
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			pixels = append(pixels, [2]int{x, y})
		}
	}
	mask := mustMask(t, 40, 40, pixels)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TransformParallel(ctx, mask, space, 2); err == nil {
		t.Error("expected an error from a canceled context")
	}
}

func TestTransformParallel_InvalidWorkers(t *testing.T) {
	space := mustSpace(t, 10, 10, 1.0, math.Pi/4)
	mask := mustMask(t, 10, 10, nil)

	if _, err := TransformParallel(context.Background(), mask, space, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for zero workers, got %v", err)
	}
}
