//go:build integration

package itest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/config"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/pipeline"
)

// TestE2E runs the full pipeline against a real ffmpeg with a stubbed
// model endpoint, so no API key or network access is needed.
func TestE2E(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		plan := map[string]any{
			"frames_to_edit": []map[string]any{
				{"start": 2, "end": 4, "type": "text_overlay"},
			},
			"enhancement_types": []string{"text_overlay"},
			"text_overlay_suggestions": []map[string]any{
				{"timestamp": 2, "text": "Integration", "position": "center"},
			},
			"effect_recommendations": []map[string]any{},
			"priority_scores":        []float64{9},
		}
		planJSON, _ := json.Marshal(plan)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(planJSON)}},
			},
		})
	}))
	defer srv.Close()

	tmp := t.TempDir()
	in := filepath.Join(tmp, "input.mp4")

	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=640x360:d=10",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		in,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}

	settings := config.Default()
	settings.Paths.OutputDir = filepath.Join(tmp, "output")
	settings.Paths.HistoryDB = filepath.Join(tmp, "output", "history.db")
	settings.Analysis.BaseURL = srv.URL
	settings.Analysis.AnalysisFrames = 2

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := pipeline.Run(ctx, pipeline.Config{
		InputPath: in,
		APIKey:    "stub-key",
		Settings:  settings,
	})
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Analysis == nil || res.Analysis.Mock {
		t.Fatalf("expected real (stubbed) analysis, got %+v", res.Analysis)
	}

	out := filepath.Join(settings.Paths.OutputDir, "enhanced_input.mp4")
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("missing output video: %v", err)
	}
	if d, err := probeDurationSeconds(out); err != nil || d < 9 {
		t.Fatalf("output duration %.2fs, err=%v", d, err)
	}

	segDir := filepath.Join(settings.Paths.OutputDir, "frames", "input", "segment_0_text_overlay")
	entries, err := os.ReadDir(segDir)
	if err != nil {
		t.Fatalf("segment dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected extracted frames in segment dir")
	}
}
