package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/grayscale"
	"github.com/anthonynsimon/bild/segment"

	"github.com/linekit/hough-lines/internal/hough"
)

// BinarizeSobel turns an arbitrary image into an edge mask by gradient
// thresholding: grayscale conversion, optional Gaussian blur, Sobel
// gradient, then a binary cut at gradientThreshold.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - blurSigma: Gaussian blur radius applied before the gradient to
//     suppress noise. Zero skips the blur; typical value: 1.0-2.0.
//   - gradientThreshold: Gradient magnitude (0-255) above which a pixel
//     counts as an edge. Typical value: 80-128 for clean diagrams.
//
// The returned mask is the detection engines' input format; the edge
// detector itself is the bild library's.
func BinarizeSobel(img image.Image, blurSigma float64, gradientThreshold uint8) (*hough.EdgeMask, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil source image", hough.ErrInvalidConfig)
	}
	if blurSigma < 0 {
		return nil, fmt.Errorf("%w: blur sigma %g must not be negative", hough.ErrInvalidConfig, blurSigma)
	}

	var src image.Image = grayscale.Grayscale(img)
	if blurSigma > 0 {
		src = blur.Gaussian(src, blurSigma)
	}
	gradient := effect.Sobel(src)
	binary := segment.Threshold(gradient, gradientThreshold)
	return hough.MaskFromGray(binary, 1)
}

// BinarizeDark marks every pixel at or below the luminance cutoff as an
// edge. This suits inputs that are already line art (dark strokes on a
// light background), where running a gradient detector would split each
// stroke into its two boundary edges.
func BinarizeDark(img image.Image, cutoff uint8) (*hough.EdgeMask, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil source image", hough.ErrInvalidConfig)
	}

	gray := grayscale.Grayscale(img)
	bounds := gray.Bounds()
	mask, err := hough.NewEdgeMask(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y <= cutoff {
				mask.Set(x, y, true)
			}
		}
	}
	return mask, nil
}

// BinarizeBright is the complement of BinarizeDark: pixels at or above the
// cutoff become edges. Use it for edge images produced by an external
// detector, where edges are bright on a dark background.
func BinarizeBright(img image.Image, cutoff uint8) (*hough.EdgeMask, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil source image", hough.ErrInvalidConfig)
	}
	return hough.MaskFromGray(grayscale.Grayscale(img), cutoff)
}
