package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/store"
)

func history(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := store.Open(settings.Paths.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded yet")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"WHEN", "INPUT", "OUTPUT", "OK", "FRAMES", "MODEL", "ERROR"})
	for _, r := range runs {
		ok := "yes"
		if !r.Success {
			ok = "no"
		}
		model := r.Model
		if r.MockAnalysis {
			model += " (mock)"
		}
		t.AppendRow(table.Row{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.InputPath,
			r.OutputPath,
			ok,
			r.FramesProcessed,
			model,
			r.ErrorMessage,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
