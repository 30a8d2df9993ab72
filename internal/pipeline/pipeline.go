// Package pipeline wires the configured adapters together and runs one
// video through the enhancement usecase.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/config"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/domain/frames"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/ports"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/ports/adapters/completion"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/ports/adapters/ffmpeg"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/ports/adapters/gemini"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/usecase"
)

const (
	BackendCompletion = "completion"
	BackendGemini     = "gemini"
)

type Config struct {
	InputPath  string
	OutputPath string

	APIKey string

	Settings config.Config

	Log   *slog.Logger
	Store ports.RunStore
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.Settings.Analysis.Backend == BackendCompletion {
		return completion.ValidateBaseURL(c.Settings.Analysis.BaseURL)
	}
	return nil
}

// Run validates the config, takes an exclusive lock on the output root and
// processes the input video. The run is recorded in the history store if
// one is configured; store failures are logged but never fail the run.
func Run(ctx context.Context, cfg Config) (types.ProcessingResult, error) {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if err := cfg.Validate(); err != nil {
		return types.ProcessingResult{InputPath: cfg.InputPath}, err
	}

	outDir := cfg.Settings.Paths.OutputDir
	if outDir == "" {
		outDir = "output"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return types.ProcessingResult{InputPath: cfg.InputPath}, err
	}

	lock := flock.New(filepath.Join(outDir, ".lock"))
	locked, err := lock.TryLockContext(ctx, 200*time.Millisecond)
	if err != nil {
		return types.ProcessingResult{InputPath: cfg.InputPath}, fmt.Errorf("lock output dir: %w", err)
	}
	if !locked {
		return types.ProcessingResult{InputPath: cfg.InputPath}, errors.New("output dir is locked by another run")
	}
	defer lock.Unlock()

	analyzer, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		return types.ProcessingResult{InputPath: cfg.InputPath}, err
	}

	stem := frames.Stem(cfg.InputPath)
	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(outDir, "enhanced_"+stem+filepath.Ext(cfg.InputPath))
	}

	runID := uuid.NewString()
	log.Info("starting run",
		"run_id", runID,
		"input", cfg.InputPath,
		"output", outputPath,
		"backend", cfg.Settings.Analysis.Backend,
		"model", cfg.Settings.Analysis.Model)

	uc := usecase.New(usecase.Deps{
		Video:    ffmpeg.New(cfg.Settings.Paths.FFmpegPath, cfg.Settings.Paths.FFprobePath),
		Analyzer: analyzer,
		Log:      log,
	})

	res, runErr := uc.Run(ctx, usecase.Input{
		InputPath:      cfg.InputPath,
		OutputPath:     outputPath,
		FramesRoot:     filepath.Join(outDir, "frames", stem),
		AnalysisFrames: cfg.Settings.Analysis.AnalysisFrames,
		FrameInterval:  cfg.Settings.Extraction.FrameInterval,
		MaxFrames:      cfg.Settings.Extraction.MaxFrames,
	})

	if cfg.Store != nil {
		rec := types.RunRecord{
			ID:              runID,
			InputPath:       cfg.InputPath,
			OutputPath:      res.OutputPath,
			Success:         res.Success,
			FramesProcessed: res.FramesProcessed,
			Model:           cfg.Settings.Analysis.Model,
			ErrorMessage:    res.ErrorMessage,
			CreatedAt:       time.Now().UTC(),
		}
		if res.Analysis != nil {
			rec.MockAnalysis = res.Analysis.Mock
		}
		if err := cfg.Store.RecordRun(ctx, rec); err != nil {
			log.Warn("record run", "err", err)
		}
	}

	return res, runErr
}

func buildAnalyzer(ctx context.Context, cfg Config) (ports.Analyzer, error) {
	a := cfg.Settings.Analysis
	switch a.Backend {
	case BackendGemini:
		return gemini.New(ctx, cfg.APIKey, a.Model, a.Temperature)
	case BackendCompletion, "":
		return completion.New(cfg.APIKey, a.Model, a.BaseURL, a.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown analysis backend %q", a.Backend)
	}
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Analyzer = (*completion.Adapter)(nil)
var _ ports.Analyzer = (*gemini.Adapter)(nil)
