package ports

import (
	"context"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

// VideoTool wraps the external transcoder and prober binaries.
type VideoTool interface {
	ProbeDuration(ctx context.Context, videoPath string) (float64, error)
	ExtractFrame(ctx context.Context, videoPath string, timestamp float64, outPath string) error
	Render(ctx context.Context, videoPath, filterGraph, outPath string) error
}

// Analyzer asks a generative model for an edit plan. framePaths may carry
// pre-extracted still images for backends that analyze sampled frames
// instead of the raw video. Transport failures are absorbed into a mock
// result and parse failures into an error sentinel on the result; a
// non-nil error means the call itself could not proceed (e.g. cancelled
// context).
type Analyzer interface {
	Analyze(ctx context.Context, videoPath string, framePaths []string) (types.AnalysisResult, error)
}

// RunStore persists pipeline run history.
type RunStore interface {
	RecordRun(ctx context.Context, rec types.RunRecord) error
	ListRuns(ctx context.Context, limit int) ([]types.RunRecord, error)
	Close() error
}
