package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/config"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/logging"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/pipeline"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/store"
)

func run(cmd *cobra.Command, input string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		settings.Analysis.BaseURL = v
	}
	applyFlags(cmd, &settings)

	apiKey, err := resolveAPIKey(settings.Analysis.Backend)
	if err != nil {
		return err
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")

	log := logging.New(settings.LogLevel)

	cfg := pipeline.Config{
		InputPath:  absIn,
		OutputPath: output,
		APIKey:     apiKey,
		Settings:   settings,
		Log:        log,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := store.Open(settings.Paths.HistoryDB)
	if err != nil {
		// History is a convenience; the run proceeds without it.
		log.Warn("run history unavailable", "err", err)
	} else {
		defer st.Close()
		cfg.Store = st
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	mode := "enhanced"
	if res.Analysis != nil && res.Analysis.Mock {
		mode = "enhanced (canned plan)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d frames, %d segments)\n",
		mode, res.OutputPath, res.FramesProcessed, res.SegmentsDone)
	return nil
}

const defaultConfigFile = "nanobanana.toml"

func loadSettings(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	settings, err := config.Load(path, explicit)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return settings, nil
}

func applyFlags(cmd *cobra.Command, settings *config.Config) {
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		settings.Analysis.Backend = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		settings.Analysis.Model = v
	}
	if v, _ := cmd.Flags().GetFloat64("temperature"); v >= 0 {
		settings.Analysis.Temperature = v
	}
	if v, _ := cmd.Flags().GetInt("analysis-frames"); v >= 0 {
		settings.Analysis.AnalysisFrames = v
	}
	if v, _ := cmd.Flags().GetFloat64("frame-interval"); v > 0 {
		settings.Extraction.FrameInterval = v
	}
	if v, _ := cmd.Flags().GetInt("max-frames"); v > 0 {
		settings.Extraction.MaxFrames = v
	}
}

func resolveAPIKey(backend string) (string, error) {
	if backend == pipeline.BackendGemini {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key, nil
		}
		return "", errors.New("GEMINI_API_KEY is required (set it in .env)")
	}
	for _, name := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}
	return "", errors.New("OPENAI_API_KEY or GEMINI_API_KEY is required (set it in .env)")
}
