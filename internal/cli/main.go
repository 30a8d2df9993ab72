package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "nanobanana <input>",
		Short:        "Enhance a short video with AI-suggested overlays and effects",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().StringP("output", "o", "", "Output video path (default output/enhanced_<name>)")
	root.Flags().String("config", "", "Config file path (TOML)")
	root.Flags().String("backend", "", "Analysis backend: completion or gemini")
	root.Flags().String("model", "", "Model name")
	root.Flags().Float64("temperature", -1, "Sampling temperature")
	root.Flags().Int("analysis-frames", -1, "Frames sampled for analysis")

	// Extraction tuning
	root.Flags().Float64("frame-interval", -1, "Seconds between extracted frames")
	root.Flags().Int("max-frames", -1, "Max frames per segment")
	_ = root.Flags().MarkHidden("frame-interval")
	_ = root.Flags().MarkHidden("max-frames")

	hist := &cobra.Command{
		Use:          "history",
		Short:        "List recent runs",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         history,
	}
	hist.Flags().String("config", "", "Config file path (TOML)")
	hist.Flags().Int("limit", 20, "Max runs to list")
	root.AddCommand(hist)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
