package detection

import (
	"math"

	"github.com/linekit/hough-lines/internal/hough"
)

// estimateThickness approximates a segment's stroke width by counting edge
// pixels along the perpendicular at the segment midpoint, sampling up to
// 10 pixels to each side.
func estimateThickness(mask *hough.EdgeMask, x1, y1, x2, y2 int) int {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 1
	}

	perpX := -dy / length
	perpY := dx / length
	midX := float64(x1+x2) / 2
	midY := float64(y1+y2) / 2

	thickness := 0
	for d := -10; d <= 10; d++ {
		px := int(midX + float64(d)*perpX)
		py := int(midY + float64(d)*perpY)
		if mask.At(px, py) {
			thickness++
		}
	}

	if thickness < 1 {
		thickness = 1
	}
	return thickness
}

// hasArrowHead reports whether the segment end at (endX, endY) carries an
// arrow head: two wings of edge pixels at roughly 45 degrees back from the
// line direction.
func hasArrowHead(mask *hough.EdgeMask, endX, endY, otherX, otherY int) bool {
	dx := float64(endX - otherX)
	dy := float64(endY - otherY)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return false
	}
	dx /= length
	dy /= length

	const checkDist = 10
	cos45 := math.Cos(math.Pi / 4)
	sin45 := math.Sin(math.Pi / 4)

	// Wing directions: the line direction rotated +/- 45 degrees.
	leftX := dx*cos45 - dy*sin45
	leftY := dx*sin45 + dy*cos45
	rightX := dx*cos45 + dy*sin45
	rightY := -dx*sin45 + dy*cos45

	leftCount := 0
	rightCount := 0
	for d := 1; d <= checkDist; d++ {
		if mask.At(endX-int(float64(d)*leftX), endY-int(float64(d)*leftY)) {
			leftCount++
		}
		if mask.At(endX-int(float64(d)*rightX), endY-int(float64(d)*rightY)) {
			rightCount++
		}
	}

	return leftCount >= 3 && rightCount >= 3
}
