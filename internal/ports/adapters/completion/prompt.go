package completion

import (
	"fmt"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

func analysisPrompt(videoPath string) string {
	return fmt.Sprintf(`Analyze this video for AI-powered editing opportunities. The video is located at: %s

Identify key moments that would benefit from enhancement:
1. Key moments that would benefit from text overlays
2. Objects or scenes that could be enhanced with effects
3. Optimal timestamps for commentary or annotations
4. Scene transitions and key moments for enhancement

Provide your analysis in JSON format with this exact structure:
{
    "frames_to_edit": [
        {"start": 0.0, "end": 2.0, "type": "text_overlay"},
        {"start": 5.5, "end": 7.0, "type": "effect_enhancement"}
    ],
    "enhancement_types": ["text_overlay", "effect_enhancement", "scene_transition"],
    "text_overlay_suggestions": [
        {"timestamp": 1.0, "text": "Key moment", "position": "center"},
        {"timestamp": 6.0, "text": "Important scene", "position": "bottom"}
    ],
    "effect_recommendations": [
        {"timestamp": 1.5, "effect": "highlight", "intensity": 0.7},
        {"timestamp": 6.5, "effect": "zoom", "factor": 1.2}
    ],
    "priority_scores": [8, 6, 9, 7]
}

Return ONLY valid JSON, no additional text or formatting.`, videoPath)
}

// MockResult is the fixed degraded-mode plan substituted when the model
// cannot be reached, flagged so callers can tell it from real analysis.
func MockResult() types.AnalysisResult {
	return types.AnalysisResult{
		Mock: true,
		Analysis: types.Analysis{
			FramesToEdit: []types.EditInstruction{
				{Start: 1.0, End: 3.0, Kind: types.EditTextOverlay},
				{Start: 5.0, End: 7.0, Kind: types.EditEffect},
				{Start: 8.0, End: 9.5, Kind: types.EditTransition},
			},
			EnhancementTypes: []string{"text_overlay", "effect_enhancement", "scene_transition"},
			TextOverlays: []types.TextOverlay{
				{Timestamp: 2.0, Text: "Test Video Content", Position: "center"},
				{Timestamp: 6.0, Text: "Enhanced Scene", Position: "bottom"},
			},
			Effects: []types.EffectSuggestion{
				{Timestamp: 2.5, Effect: "highlight", Intensity: 0.8},
				{Timestamp: 6.5, Effect: "zoom", Factor: 1.3},
			},
			PriorityScores: []float64{9, 7, 8},
		},
	}
}
