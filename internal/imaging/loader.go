package imaging

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of loaded images so a batch run
// over the same inputs decodes each file once.
//
// Cached images remain in memory until Evict or Clear; long-running
// callers should release entries they are done with.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache, ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding it from disk on the
// first request. PNG, JPEG, GIF, TIFF, and BMP are supported. The cache
// key is the exact path string; relative and absolute spellings of the
// same file cache separately.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes one cached entry; unknown paths are a no-op.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Downscale caps an image's longer side at maxDim pixels, preserving
// aspect ratio. Hough voting costs grow with edge count, so shrinking
// large photographs before binarization keeps detection fast; images
// already within the cap are returned unchanged.
func Downscale(img image.Image, maxDim int) (image.Image, error) {
	if maxDim <= 0 {
		return nil, fmt.Errorf("invalid max dimension %d", maxDim)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img, nil
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos), nil
}
