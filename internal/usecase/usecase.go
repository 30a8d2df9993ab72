// Package usecase runs one video through the analyze/extract/render
// pipeline. It owns the sequencing and fallbacks; the adapters behind the
// ports do the actual work.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/domain/editplan"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/domain/frames"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/ports"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

type Deps struct {
	Video    ports.VideoTool
	Analyzer ports.Analyzer
	Log      *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Log == nil {
		d.Log = slog.New(slog.DiscardHandler)
	}
	return Usecase{d: d}
}

type Input struct {
	InputPath  string
	OutputPath string
	FramesRoot string

	// AnalysisFrames is how many stills get sampled across the whole video
	// and handed to the analyzer.
	AnalysisFrames int

	// FrameInterval and MaxFrames control per-segment extraction.
	FrameInterval float64
	MaxFrames     int

	// OverlayWindow is how long an overlay without an explicit duration
	// stays on screen.
	OverlayWindow float64
}

// Run processes one video end to end. Degraded outcomes (mock analysis,
// render fallback to a plain copy) still count as success; only a missing
// input, an unparseable model reply, or a failed fallback copy fail the
// run. The returned result is populated even on failure.
func (u Usecase) Run(ctx context.Context, in Input) (types.ProcessingResult, error) {
	res := types.ProcessingResult{InputPath: in.InputPath, OutputPath: in.OutputPath}

	if _, err := os.Stat(in.InputPath); err != nil {
		res.ErrorMessage = fmt.Sprintf("input video: %v", err)
		return res, fmt.Errorf("input video: %w", err)
	}

	analysisDir := filepath.Join(in.FramesRoot, "analysis")
	samplePaths := u.sampleAnalysisFrames(ctx, in, analysisDir)

	ar, err := u.d.Analyzer.Analyze(ctx, in.InputPath, samplePaths)
	if err != nil {
		res.ErrorMessage = fmt.Sprintf("analyze: %v", err)
		return res, fmt.Errorf("analyze: %w", err)
	}
	res.Analysis = &ar
	if ar.Failed() {
		res.ErrorMessage = fmt.Sprintf("analysis parse: %s", ar.Err)
		return res, fmt.Errorf("analysis parse: %s", ar.Err)
	}
	if ar.Mock {
		u.d.Log.Warn("analysis unavailable, using canned plan", "input", in.InputPath)
	}

	res.FramesProcessed, res.SegmentsDone = u.extractSegments(ctx, in, ar.Analysis)

	if err := u.render(ctx, in, ar.Analysis); err != nil {
		res.ErrorMessage = fmt.Sprintf("render fallback: %v", err)
		return res, fmt.Errorf("render fallback: %w", err)
	}

	res.Success = true
	return res, nil
}

// sampleAnalysisFrames extracts evenly spaced stills for the analyzer.
// Any failure here only degrades the analysis input, so errors are logged
// and skipped.
func (u Usecase) sampleAnalysisFrames(ctx context.Context, in Input, dir string) []string {
	if in.AnalysisFrames <= 0 {
		return nil
	}
	duration, err := u.d.Video.ProbeDuration(ctx, in.InputPath)
	if err != nil {
		u.d.Log.Warn("probe failed, analyzing without frames", "err", err)
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		u.d.Log.Warn("analysis frame dir", "err", err)
		return nil
	}
	var out []string
	for i, ts := range frames.EvenTimestamps(duration, in.AnalysisFrames) {
		p := filepath.Join(dir, fmt.Sprintf("frame_%d.jpg", i))
		if err := u.d.Video.ExtractFrame(ctx, in.InputPath, ts, p); err != nil {
			u.d.Log.Warn("analysis frame skipped", "timestamp", ts, "err", err)
			continue
		}
		out = append(out, p)
	}
	return out
}

// extractSegments pulls frames for every flagged segment into its own
// directory. A segment whose directory cannot be created or whose every
// frame fails is skipped, not fatal.
func (u Usecase) extractSegments(ctx context.Context, in Input, a types.Analysis) (framesDone, segmentsDone int) {
	for i, instr := range a.FramesToEdit {
		dir := frames.SegmentDir(in.FramesRoot, i, instr.Kind)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			u.d.Log.Warn("segment dir skipped", "segment", i, "err", err)
			continue
		}
		n := 0
		for j, ts := range frames.SegmentTimestamps(instr.Start, instr.End, in.FrameInterval, in.MaxFrames) {
			p := filepath.Join(dir, fmt.Sprintf("frame_%d.jpg", j))
			if err := u.d.Video.ExtractFrame(ctx, in.InputPath, ts, p); err != nil {
				u.d.Log.Warn("frame skipped", "segment", i, "timestamp", ts, "err", err)
				continue
			}
			n++
		}
		if n == 0 {
			continue
		}
		framesDone += n
		segmentsDone++
	}
	return framesDone, segmentsDone
}

// render applies the compiled filter graph, falling back to a plain copy
// when the plan is empty or the transcoder fails.
func (u Usecase) render(ctx context.Context, in Input, a types.Analysis) error {
	directives := editplan.Compile(a, in.OverlayWindow)
	if len(directives) == 0 {
		u.d.Log.Info("empty edit plan, copying input unchanged", "output", in.OutputPath)
		return copyFile(in.InputPath, in.OutputPath)
	}
	graph := editplan.Graph(directives)
	if err := u.d.Video.Render(ctx, in.InputPath, graph, in.OutputPath); err != nil {
		u.d.Log.Warn("render failed, copying input unchanged", "err", err)
		return copyFile(in.InputPath, in.OutputPath)
	}
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
