package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nanobanana.toml"), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analysis.Backend != "completion" || cfg.Extraction.MaxFrames != 5000 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml"), true); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.toml")
	content := `
log_level = "debug"

[analysis]
backend = "gemini"
model = "gemini-1.5-pro"
temperature = 0.2

[extraction]
frame_interval_seconds = 2.5
max_frames = 100

[paths]
output_dir = "out"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analysis.Backend != "gemini" || cfg.Analysis.Model != "gemini-1.5-pro" {
		t.Fatalf("analysis not overridden: %+v", cfg.Analysis)
	}
	if cfg.Extraction.FrameInterval != 2.5 || cfg.Extraction.MaxFrames != 100 {
		t.Fatalf("extraction not overridden: %+v", cfg.Extraction)
	}
	// Untouched keys keep their defaults.
	if cfg.Analysis.AnalysisFrames != 5 {
		t.Fatalf("expected default analysis_frames, got %d", cfg.Analysis.AnalysisFrames)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad backend", func(c *Config) { c.Analysis.Backend = "oracle" }},
		{"negative temperature", func(c *Config) { c.Analysis.Temperature = -1 }},
		{"zero interval", func(c *Config) { c.Extraction.FrameInterval = 0 }},
		{"zero max frames", func(c *Config) { c.Extraction.MaxFrames = 0 }},
		{"empty output dir", func(c *Config) { c.Paths.OutputDir = "" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
