package hough

import (
	"fmt"
	"image"
)

// EdgeMask is a W x H boolean grid marking which pixels are edge
// candidates. It is the input to both detection engines, which treat it as
// read-only; the caller owns it and may reuse it across calls.
type EdgeMask struct {
	width  int
	height int
	bits   []bool
}

// NewEdgeMask creates an all-false mask of the given dimensions.
// Returns ErrInvalidConfig (wrapped) if either dimension is non-positive.
func NewEdgeMask(width, height int) (*EdgeMask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: mask dimensions %dx%d must be positive", ErrInvalidConfig, width, height)
	}
	return &EdgeMask{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}, nil
}

// MaskFromRows builds a mask from row-major [][]bool data (rows[y][x]).
// Every row must have the same length.
func MaskFromRows(rows [][]bool) (*EdgeMask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: mask rows must be non-empty", ErrInvalidConfig)
	}
	m, err := NewEdgeMask(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != m.width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidConfig, y, len(row), m.width)
		}
		copy(m.bits[y*m.width:(y+1)*m.width], row)
	}
	return m, nil
}

// MaskFromGray adapts a grayscale edge image (as produced by typical edge
// detectors, edges bright on dark) into a mask. Pixels with luminance >=
// cutoff become edge pixels. Coordinates are normalized so the mask origin
// is the image's top-left regardless of its Bounds offset.
func MaskFromGray(img *image.Gray, cutoff uint8) (*EdgeMask, error) {
	bounds := img.Bounds()
	m, err := NewEdgeMask(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y >= cutoff {
				m.bits[y*m.width+x] = true
			}
		}
	}
	return m, nil
}

// Width returns the mask width in pixels.
func (m *EdgeMask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *EdgeMask) Height() int { return m.height }

// At reports whether (x, y) is an edge pixel. Out-of-bounds coordinates
// return false, which lets segment growth walk off the image without a
// separate bounds check.
func (m *EdgeMask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Set marks or clears the edge flag at (x, y). Out-of-bounds coordinates
// are ignored.
func (m *EdgeMask) Set(x, y int, edge bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = edge
}

// CountEdges returns the number of edge pixels in the mask.
func (m *EdgeMask) CountEdges() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
