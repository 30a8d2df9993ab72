// Package config loads the optional TOML config file over the built-in
// defaults. Environment and flag overrides win; that merge happens in
// the CLI layer.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Analysis controls the AI analysis phase.
type Analysis struct {
	Backend        string  `toml:"backend"` // "completion" or "gemini"
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	AnalysisFrames int     `toml:"analysis_frames"`
	BaseURL        string  `toml:"base_url"`
}

// Extraction controls targeted frame extraction.
type Extraction struct {
	FrameInterval float64 `toml:"frame_interval_seconds"`
	MaxFrames     int     `toml:"max_frames"`
}

// Paths contains directory and tool-location configuration.
type Paths struct {
	OutputDir   string `toml:"output_dir"`
	HistoryDB   string `toml:"history_db"`
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
}

type Config struct {
	LogLevel   string     `toml:"log_level"`
	Analysis   Analysis   `toml:"analysis"`
	Extraction Extraction `toml:"extraction"`
	Paths      Paths      `toml:"paths"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Analysis: Analysis{
			Backend:        "completion",
			Model:          "gemini-1.5-flash",
			Temperature:    0.7,
			AnalysisFrames: 5,
		},
		Extraction: Extraction{
			FrameInterval: 1,
			MaxFrames:     5000,
		},
		Paths: Paths{
			OutputDir: "output",
			HistoryDB: "output/history.db",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// the path is the default location; an explicitly requested file must
// exist.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot work with.
func (c Config) Validate() error {
	switch c.Analysis.Backend {
	case "completion", "gemini":
	default:
		return fmt.Errorf("analysis backend must be \"completion\" or \"gemini\", got %q", c.Analysis.Backend)
	}
	if c.Analysis.Temperature < 0 || c.Analysis.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %g", c.Analysis.Temperature)
	}
	if c.Analysis.AnalysisFrames < 0 {
		return fmt.Errorf("analysis_frames must be >= 0")
	}
	if c.Extraction.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval_seconds must be > 0")
	}
	if c.Extraction.MaxFrames <= 0 {
		return fmt.Errorf("max_frames must be > 0")
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}
