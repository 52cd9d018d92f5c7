package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
mode: probabilistic
vote_threshold: 25
min_segment_length: 40
binarizer: dark
luma_cutoff: 80
seed: 7
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != "probabilistic" {
		t.Errorf("Mode = %q, want probabilistic", cfg.Mode)
	}
	if cfg.VoteThreshold != 25 {
		t.Errorf("VoteThreshold = %d, want 25", cfg.VoteThreshold)
	}
	if cfg.MinSegmentLength != 40 {
		t.Errorf("MinSegmentLength = %d, want 40", cfg.MinSegmentLength)
	}
	if cfg.LumaCutoff != 80 {
		t.Errorf("LumaCutoff = %d, want 80", cfg.LumaCutoff)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "mode: classic\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RhoResolution != 1.0 {
		t.Errorf("RhoResolution = %g, want default 1.0", cfg.RhoResolution)
	}
	if math.Abs(cfg.ThetaResolution-math.Pi/180) > 1e-12 {
		t.Errorf("ThetaResolution = %g, want default pi/180", cfg.ThetaResolution)
	}
	if cfg.Binarizer != "sobel" {
		t.Errorf("Binarizer = %q, want default sobel", cfg.Binarizer)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want default 1", cfg.Workers)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad mode", "mode: fuzzy\n"},
		{"bad binarizer", "binarizer: median\n"},
		{"negative rho", "rho_resolution: -1\n"},
		{"negative threshold", "vote_threshold: -5\n"},
		{"gradient out of range", "gradient_threshold: 300\n"},
		{"negative workers", "workers: -2\n"},
	}
	for _, c := range cases {
		path := writeConfig(t, c.content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "mode: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration failed validation: %v", err)
	}
}
