package detection

import (
	"context"
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/linekit/hough-lines/internal/hough"
	"github.com/linekit/hough-lines/internal/imaging"
)

// Binarizer selects how an input image becomes an edge mask.
type Binarizer string

const (
	// BinarizerSobel runs gradient-threshold edge detection. Default.
	BinarizerSobel Binarizer = "sobel"
	// BinarizerDark treats dark pixels as edges (line art on light paper).
	BinarizerDark Binarizer = "dark"
	// BinarizerBright treats bright pixels as edges (pre-computed edge
	// images from an external detector).
	BinarizerBright Binarizer = "bright"
)

// Point is a pixel coordinate, origin at the image's top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Line is an infinite line found by the classic transform.
type Line struct {
	Rho          float64 `json:"rho"`
	ThetaRadians float64 `json:"theta_radians"`
	AngleDegrees float64 `json:"angle_degrees"`
	Votes        int     `json:"votes"`
}

// LinesResult contains detected infinite lines, strongest first.
type LinesResult struct {
	Lines []Line `json:"lines"`
	Count int    `json:"count"`
}

// Segment is a bounded line segment found by the probabilistic transform.
type Segment struct {
	Start           Point   `json:"start"`
	End             Point   `json:"end"`
	Length          float64 `json:"length"`
	AngleDegrees    float64 `json:"angle_degrees"`
	Color           string  `json:"color"`
	ThicknessApprox int     `json:"thickness_approx"`
	HasArrowStart   bool    `json:"has_arrow_start"`
	HasArrowEnd     bool    `json:"has_arrow_end"`
}

// SegmentsResult contains detected segments in emission order.
type SegmentsResult struct {
	Segments []Segment `json:"segments"`
	Count    int       `json:"count"`
}

// Options configures a detection run. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// RhoResolution is the distance step of the accumulator in pixels.
	RhoResolution float64
	// ThetaResolution is the angular step in radians.
	ThetaResolution float64
	// VoteThreshold is the minimum accumulator count (exclusive) for a
	// cell to produce a candidate.
	VoteThreshold int

	// MinSegmentLength and MaxPixelGap apply to DetectSegments only.
	MinSegmentLength int
	MaxPixelGap      int

	// Binarizer, BlurSigma, GradientThreshold, and LumaCutoff control the
	// image-to-mask step. BlurSigma and GradientThreshold apply to the
	// sobel binarizer, LumaCutoff to dark/bright.
	Binarizer         Binarizer
	BlurSigma         float64
	GradientThreshold uint8
	LumaCutoff        uint8

	// MaxResults caps the number of reported candidates.
	MaxResults int

	// DetectArrows enables arrow-head classification on segments.
	DetectArrows bool

	// Workers > 1 parallelizes classic voting by row strip.
	Workers int

	// Rand drives the probabilistic engine's sampling; nil selects a
	// time-seeded source. Fix it for reproducible runs.
	Rand *rand.Rand
}

// DefaultOptions returns the standard configuration: 1-pixel rho bins,
// 1-degree theta bins, sobel binarization, and a 50-candidate cap.
func DefaultOptions() Options {
	return Options{
		RhoResolution:     1.0,
		ThetaResolution:   math.Pi / 180,
		VoteThreshold:     50,
		MinSegmentLength:  30,
		MaxPixelGap:       2,
		Binarizer:         BinarizerSobel,
		BlurSigma:         1.4,
		GradientThreshold: 128,
		LumaCutoff:        64,
		MaxResults:        50,
		Workers:           1,
	}
}

// DetectLines finds infinite lines in an image with the classic Hough
// transform: binarize, vote every edge pixel, report cells above the vote
// threshold as (rho, theta) lines, strongest first, capped at MaxResults.
func DetectLines(img image.Image, opts Options) (*LinesResult, error) {
	mask, space, err := prepare(img, opts)
	if err != nil {
		return nil, err
	}

	var lines []hough.Line
	if opts.Workers > 1 {
		lines, err = hough.DetectLinesParallel(context.Background(), mask, space, opts.VoteThreshold, opts.Workers)
	} else {
		lines, err = hough.DetectLines(mask, space, opts.VoteThreshold)
	}
	if err != nil {
		return nil, err
	}

	if opts.MaxResults > 0 && len(lines) > opts.MaxResults {
		lines = lines[:opts.MaxResults]
	}
	result := &LinesResult{Lines: make([]Line, len(lines))}
	for k, l := range lines {
		result.Lines[k] = Line{
			Rho:          l.Rho,
			ThetaRadians: l.Theta,
			AngleDegrees: math.Round(l.Theta*180/math.Pi*10) / 10,
			Votes:        l.Votes,
		}
	}
	result.Count = len(result.Lines)
	return result, nil
}

// DetectSegments finds bounded line segments with the probabilistic Hough
// transform and annotates each with its length, angle, midpoint color, an
// approximate stroke thickness, and (optionally) arrow-head flags.
func DetectSegments(img image.Image, opts Options) (*SegmentsResult, error) {
	mask, space, err := prepare(img, opts)
	if err != nil {
		return nil, err
	}

	segs, err := hough.DetectSegments(mask, space, opts.VoteThreshold, opts.MinSegmentLength, opts.MaxPixelGap, opts.Rand)
	if err != nil {
		return nil, err
	}
	if opts.MaxResults > 0 && len(segs) > opts.MaxResults {
		segs = segs[:opts.MaxResults]
	}

	bounds := img.Bounds()
	result := &SegmentsResult{Segments: make([]Segment, len(segs))}
	for k, s := range segs {
		dx := float64(s.X2 - s.X1)
		dy := float64(s.Y2 - s.Y1)
		midX := (s.X1 + s.X2) / 2
		midY := (s.Y1 + s.Y2) / 2

		seg := Segment{
			Start:           Point{X: s.X1, Y: s.Y1},
			End:             Point{X: s.X2, Y: s.Y2},
			Length:          math.Round(s.Length()*10) / 10,
			AngleDegrees:    math.Round(math.Atan2(dy, dx)*180/math.Pi*10) / 10,
			Color:           sampleColorHex(img, midX+bounds.Min.X, midY+bounds.Min.Y),
			ThicknessApprox: estimateThickness(mask, s.X1, s.Y1, s.X2, s.Y2),
		}
		if opts.DetectArrows {
			seg.HasArrowStart = hasArrowHead(mask, s.X1, s.Y1, s.X2, s.Y2)
			seg.HasArrowEnd = hasArrowHead(mask, s.X2, s.Y2, s.X1, s.Y1)
		}
		result.Segments[k] = seg
	}
	result.Count = len(result.Segments)
	return result, nil
}

// prepare binarizes the image and builds the matching parameter space.
func prepare(img image.Image, opts Options) (*hough.EdgeMask, *hough.ParameterSpace, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("%w: nil source image", hough.ErrInvalidConfig)
	}

	var mask *hough.EdgeMask
	var err error
	switch opts.Binarizer {
	case BinarizerSobel, "":
		mask, err = imaging.BinarizeSobel(img, opts.BlurSigma, opts.GradientThreshold)
	case BinarizerDark:
		mask, err = imaging.BinarizeDark(img, opts.LumaCutoff)
	case BinarizerBright:
		mask, err = imaging.BinarizeBright(img, opts.LumaCutoff)
	default:
		return nil, nil, fmt.Errorf("%w: unknown binarizer %q", hough.ErrInvalidConfig, opts.Binarizer)
	}
	if err != nil {
		return nil, nil, err
	}

	space, err := hough.NewParameterSpace(mask.Width(), mask.Height(), opts.RhoResolution, opts.ThetaResolution)
	if err != nil {
		return nil, nil, err
	}
	return mask, space, nil
}

// sampleColorHex returns the "#rrggbb" color at (x, y), or black when the
// pixel is fully transparent or out of bounds.
func sampleColorHex(img image.Image, x, y int) string {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return "#000000"
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return "#000000"
	}
	return c.Hex()
}
