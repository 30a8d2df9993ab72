package editplan

import (
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

// Effect names the analyzer is allowed to suggest. Anything else is
// silently skipped.
const (
	effectHighlight  = "highlight"
	effectZoom       = "zoom"
	effectBlur       = "blur"
	effectBrightness = "brightness"
	effectContrast   = "contrast"
)

// Compile turns an analysis into an ordered directive list: one DrawText
// per overlay suggestion, then one directive per instruction or effect
// suggestion with a known kind. overlayWindow overrides the visibility
// window of overlays that carry no duration; pass 0 for the default.
func Compile(a types.Analysis, overlayWindow float64) []Directive {
	if overlayWindow <= 0 {
		overlayWindow = DefaultOverlayWindow
	}

	out := make([]Directive, 0, len(a.TextOverlays)+len(a.FramesToEdit)+len(a.Effects))

	for _, ov := range a.TextOverlays {
		window := ov.Duration
		if window <= 0 {
			window = overlayWindow
		}
		out = append(out, DrawText{
			Text:     ov.Text,
			Position: Position(ov.Position),
			Start:    ov.Timestamp,
			Duration: window,
		})
	}

	for _, in := range a.FramesToEdit {
		end := in.End
		if end <= in.Start {
			end = in.Start + overlayWindow
		}
		switch in.Kind {
		case types.EditEffect:
			// Subtle boost so flagged segments read brighter.
			out = append(out, Brightness{Start: in.Start, End: end, Delta: 0.1})
		case types.EditTransition:
			out = append(out, FadeIn{Start: in.Start, Duration: 0.5})
		default:
			// text_overlay segments are rendered from the overlay
			// suggestions above; unknown kinds are skipped.
		}
	}

	for _, ef := range a.Effects {
		start := ef.Timestamp
		end := start + overlayWindow
		switch ef.Effect {
		case effectBlur:
			out = append(out, Blur{Start: start, End: end, Radius: blurRadius(ef.Intensity)})
		case effectBrightness:
			out = append(out, Brightness{Start: start, End: end, Delta: brightnessDelta(ef.Intensity)})
		case effectContrast:
			out = append(out, Contrast{Start: start, End: end, Factor: ef.Factor})
		case effectZoom:
			out = append(out, Zoom{Start: start, End: end, MaxFactor: ef.Factor})
		case effectHighlight:
			out = append(out, Brightness{Start: start, End: end, Delta: highlightDelta(ef.Intensity)})
		}
	}

	return out
}

func blurRadius(intensity float64) int {
	if intensity <= 0 || intensity > 1 {
		return 5
	}
	r := int(intensity * 10)
	if r < 1 {
		r = 1
	}
	return r
}

func brightnessDelta(intensity float64) float64 {
	if intensity <= 0 || intensity > 1 {
		return 0.3
	}
	return 0.3 * intensity
}

func highlightDelta(intensity float64) float64 {
	if intensity <= 0 || intensity > 1 {
		return 0.1
	}
	return 0.1 + 0.1*intensity
}
