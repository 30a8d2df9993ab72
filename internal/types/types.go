package types

import "time"

// EditKind classifies a segment flagged by the AI analysis.
type EditKind string

const (
	EditTextOverlay EditKind = "text_overlay"
	EditEffect      EditKind = "effect_enhancement"
	EditTransition  EditKind = "scene_transition"
)

// EditInstruction is one timestamp range the model wants edited.
type EditInstruction struct {
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Kind  EditKind `json:"type"`
}

// TextOverlay is a model-suggested caption at a point in time.
// Position is one of "center", "top", "bottom"; anything else renders centered.
type TextOverlay struct {
	Timestamp float64 `json:"timestamp"`
	Text      string  `json:"text"`
	Position  string  `json:"position"`
	Duration  float64 `json:"duration,omitempty"`
}

// EffectSuggestion is a model-suggested visual effect at a point in time.
type EffectSuggestion struct {
	Timestamp float64 `json:"timestamp"`
	Effect    string  `json:"effect"`
	Intensity float64 `json:"intensity,omitempty"`
	Factor    float64 `json:"factor,omitempty"`
}

// Analysis is the decoded JSON edit plan returned by the model.
type Analysis struct {
	FramesToEdit     []EditInstruction  `json:"frames_to_edit"`
	EnhancementTypes []string           `json:"enhancement_types"`
	TextOverlays     []TextOverlay      `json:"text_overlay_suggestions"`
	Effects          []EffectSuggestion `json:"effect_recommendations"`
	PriorityScores   []float64          `json:"priority_scores"`
}

// Empty reports whether the plan contains nothing actionable.
func (a Analysis) Empty() bool {
	return len(a.FramesToEdit) == 0 && len(a.TextOverlays) == 0 && len(a.Effects) == 0
}

// AnalysisResult is the outcome of one analyzer call. Either Analysis is
// populated, or Err is set and Raw carries the unparseable model text.
// Mock marks a hard-coded fallback plan substituted after a transport
// failure so callers can tell real analysis from degraded-mode output.
type AnalysisResult struct {
	Analysis Analysis
	Mock     bool
	Err      string
	Raw      string
}

// Failed reports whether the model reply could not be parsed.
func (r AnalysisResult) Failed() bool { return r.Err != "" }

// ProcessingResult is the terminal outcome of one pipeline run.
type ProcessingResult struct {
	Success         bool
	InputPath       string
	OutputPath      string
	FramesProcessed int
	SegmentsDone    int
	Analysis        *AnalysisResult
	ErrorMessage    string
}

// RunRecord is one persisted row of pipeline run history.
type RunRecord struct {
	ID              string
	InputPath       string
	OutputPath      string
	Success         bool
	FramesProcessed int
	MockAnalysis    bool
	Model           string
	ErrorMessage    string
	CreatedAt       time.Time
}
