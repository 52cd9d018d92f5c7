package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/linekit/hough-lines/internal/config"
	"github.com/linekit/hough-lines/internal/detection"
	"github.com/linekit/hough-lines/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// output is the JSON document written to stdout.
type output struct {
	Image    string                    `json:"image"`
	Mode     string                    `json:"mode"`
	Lines    *detection.LinesResult    `json:"lines,omitempty"`
	Segments *detection.SegmentsResult `json:"segments,omitempty"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("hough-detect %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	// Results go to stdout; everything else to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	fs := flag.NewFlagSet("hough-detect", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "hough-detect - detect straight lines in an image")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: hough-detect [options] <image>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "path to a YAML configuration file")
	mode := fs.String("mode", "", "detection mode: classic or probabilistic")
	threshold := fs.Int("threshold", -1, "accumulator vote threshold")
	minLength := fs.Int("min-length", -1, "minimum segment length in pixels (probabilistic)")
	maxGap := fs.Int("max-gap", -1, "maximum bridged gap in pixels (probabilistic)")
	binarizer := fs.String("binarizer", "", "binarizer: sobel, dark, or bright")
	seed := fs.Int64("seed", 0, "random seed for reproducible probabilistic runs")
	workers := fs.Int("workers", 0, "parallel voting workers (classic)")
	maxDim := fs.Int("max-dim", 0, "downscale images whose longer side exceeds this")
	arrows := fs.Bool("arrows", false, "classify arrow heads on segment ends")
	pretty := fs.Bool("pretty", false, "indent the JSON output")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	imagePath := fs.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = *loaded
	}

	// Flags override the config file.
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *threshold >= 0 {
		cfg.VoteThreshold = *threshold
	}
	if *minLength >= 0 {
		cfg.MinSegmentLength = *minLength
	}
	if *maxGap >= 0 {
		cfg.MaxPixelGap = *maxGap
	}
	if *binarizer != "" {
		cfg.Binarizer = *binarizer
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *maxDim > 0 {
		cfg.MaxDimension = *maxDim
	}
	if *arrows {
		cfg.DetectArrows = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if err := run(imagePath, cfg, *pretty); err != nil {
		log.Fatalf("Detection error: %v", err)
	}
}

func run(imagePath string, cfg config.Config, pretty bool) error {
	cache := imaging.NewImageCache()
	img, err := cache.Load(imagePath)
	if err != nil {
		return err
	}
	if cfg.MaxDimension > 0 {
		if img, err = imaging.Downscale(img, cfg.MaxDimension); err != nil {
			return err
		}
	}

	opts := detection.Options{
		RhoResolution:     cfg.RhoResolution,
		ThetaResolution:   cfg.ThetaResolution,
		VoteThreshold:     cfg.VoteThreshold,
		MinSegmentLength:  cfg.MinSegmentLength,
		MaxPixelGap:       cfg.MaxPixelGap,
		Binarizer:         detection.Binarizer(cfg.Binarizer),
		BlurSigma:         cfg.BlurSigma,
		GradientThreshold: uint8(cfg.GradientThreshold),
		LumaCutoff:        uint8(cfg.LumaCutoff),
		MaxResults:        cfg.MaxResults,
		DetectArrows:      cfg.DetectArrows,
		Workers:           cfg.Workers,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	}

	doc := output{Image: imagePath, Mode: cfg.Mode}
	switch cfg.Mode {
	case "classic":
		doc.Lines, err = detection.DetectLines(img, opts)
	case "probabilistic":
		doc.Segments, err = detection.DetectSegments(img, opts)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
