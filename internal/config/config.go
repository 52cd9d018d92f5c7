// Package config loads and validates detection run configuration.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-serializable configuration for one detection run.
// Zero-valued fields are filled with defaults by Load and Default.
type Config struct {
	// Mode selects the engine: "classic" or "probabilistic".
	Mode string `yaml:"mode"`

	// Accumulator discretization.
	RhoResolution   float64 `yaml:"rho_resolution"`   // pixels, > 0
	ThetaResolution float64 `yaml:"theta_resolution"` // radians, > 0
	VoteThreshold   int     `yaml:"vote_threshold"`   // >= 0

	// Probabilistic engine only.
	MinSegmentLength int   `yaml:"min_segment_length"` // pixels, >= 0
	MaxPixelGap      int   `yaml:"max_pixel_gap"`      // pixels, >= 0
	Seed             int64 `yaml:"seed"`               // 0 = seed from clock

	// Image-to-mask step: "sobel", "dark", or "bright".
	Binarizer         string  `yaml:"binarizer"`
	BlurSigma         float64 `yaml:"blur_sigma"`
	GradientThreshold int     `yaml:"gradient_threshold"` // 0-255
	LumaCutoff        int     `yaml:"luma_cutoff"`        // 0-255

	// Run shaping.
	MaxDimension int  `yaml:"max_dimension"` // downscale cap, 0 = off
	MaxResults   int  `yaml:"max_results"`
	DetectArrows bool `yaml:"detect_arrows"`
	Workers      int  `yaml:"workers"`
}

// Default returns the standard configuration: classic mode, 1-pixel rho
// bins, 1-degree theta bins, sobel binarization.
func Default() Config {
	return Config{
		Mode:              "classic",
		RhoResolution:     1.0,
		ThetaResolution:   math.Pi / 180,
		VoteThreshold:     50,
		MinSegmentLength:  30,
		MaxPixelGap:       2,
		Binarizer:         "sobel",
		BlurSigma:         1.4,
		GradientThreshold: 128,
		LumaCutoff:        64,
		MaxResults:        50,
		Workers:           1,
	}
}

// Load reads a YAML config file, fills unset fields with defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Mode == "" {
		c.Mode = def.Mode
	}
	if c.RhoResolution == 0 {
		c.RhoResolution = def.RhoResolution
	}
	if c.ThetaResolution == 0 {
		c.ThetaResolution = def.ThetaResolution
	}
	if c.VoteThreshold == 0 {
		c.VoteThreshold = def.VoteThreshold
	}
	if c.MinSegmentLength == 0 {
		c.MinSegmentLength = def.MinSegmentLength
	}
	if c.MaxPixelGap == 0 {
		c.MaxPixelGap = def.MaxPixelGap
	}
	if c.Binarizer == "" {
		c.Binarizer = def.Binarizer
	}
	if c.BlurSigma == 0 {
		c.BlurSigma = def.BlurSigma
	}
	if c.GradientThreshold == 0 {
		c.GradientThreshold = def.GradientThreshold
	}
	if c.LumaCutoff == 0 {
		c.LumaCutoff = def.LumaCutoff
	}
	if c.MaxResults == 0 {
		c.MaxResults = def.MaxResults
	}
	if c.Workers == 0 {
		c.Workers = def.Workers
	}
}

// Validate checks ranges and enum fields. It mirrors the engine-level
// checks so a bad file fails before any image work starts.
func (c *Config) Validate() error {
	switch c.Mode {
	case "classic", "probabilistic":
	default:
		return fmt.Errorf("invalid mode %q: must be classic or probabilistic", c.Mode)
	}
	switch c.Binarizer {
	case "sobel", "dark", "bright":
	default:
		return fmt.Errorf("invalid binarizer %q: must be sobel, dark, or bright", c.Binarizer)
	}
	if c.RhoResolution <= 0 {
		return fmt.Errorf("rho_resolution %g must be positive", c.RhoResolution)
	}
	if c.ThetaResolution <= 0 {
		return fmt.Errorf("theta_resolution %g must be positive", c.ThetaResolution)
	}
	if c.VoteThreshold < 0 {
		return fmt.Errorf("vote_threshold %d must not be negative", c.VoteThreshold)
	}
	if c.MinSegmentLength < 0 {
		return fmt.Errorf("min_segment_length %d must not be negative", c.MinSegmentLength)
	}
	if c.MaxPixelGap < 0 {
		return fmt.Errorf("max_pixel_gap %d must not be negative", c.MaxPixelGap)
	}
	if c.GradientThreshold < 0 || c.GradientThreshold > 255 {
		return fmt.Errorf("gradient_threshold %d must be in 0-255", c.GradientThreshold)
	}
	if c.LumaCutoff < 0 || c.LumaCutoff > 255 {
		return fmt.Errorf("luma_cutoff %d must be in 0-255", c.LumaCutoff)
	}
	if c.BlurSigma < 0 {
		return fmt.Errorf("blur_sigma %g must not be negative", c.BlurSigma)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max_dimension %d must not be negative", c.MaxDimension)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers %d must be at least 1", c.Workers)
	}
	return nil
}
