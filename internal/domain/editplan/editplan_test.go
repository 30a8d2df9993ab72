package editplan

import (
	"strings"
	"testing"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

func TestCompile_DirectiveCounts(t *testing.T) {
	t.Parallel()

	a := types.Analysis{
		TextOverlays: []types.TextOverlay{
			{Timestamp: 1, Text: "one", Position: "center"},
			{Timestamp: 4, Text: "two", Position: "bottom"},
			{Timestamp: 8, Text: "three", Position: "sideways"},
		},
		Effects: []types.EffectSuggestion{
			{Timestamp: 2, Effect: "blur", Intensity: 0.5},
			{Timestamp: 5, Effect: "zoom", Factor: 1.2},
			{Timestamp: 7, Effect: "sparkle"}, // unknown, skipped
		},
	}

	ds := Compile(a, 0)
	graph := Graph(ds)

	if got := strings.Count(graph, "drawtext="); got != 3 {
		t.Fatalf("expected exactly 3 drawtext directives, got %d in %q", got, graph)
	}
	effects := len(ds) - 3
	if effects > len(a.Effects) {
		t.Fatalf("expected at most %d effect directives, got %d", len(a.Effects), effects)
	}
	if effects != 2 {
		t.Fatalf("expected sparkle to be skipped, got %d effect directives", effects)
	}
}

func TestCompile_InstructionKinds(t *testing.T) {
	t.Parallel()

	a := types.Analysis{
		FramesToEdit: []types.EditInstruction{
			{Start: 1, End: 3, Kind: types.EditTextOverlay},  // no effect directive
			{Start: 5, End: 7, Kind: types.EditEffect},       // brightness boost
			{Start: 8, End: 9.5, Kind: types.EditTransition}, // fade-in
			{Start: 10, End: 11, Kind: "hologram"},           // unknown, skipped
		},
	}

	graph := Graph(Compile(a, 0))
	if !strings.Contains(graph, "eq=brightness=0.1:enable='between(t,5,7)'") {
		t.Fatalf("missing effect_enhancement brightness boost in %q", graph)
	}
	if !strings.Contains(graph, "fade=t=in:st=8:d=0.5") {
		t.Fatalf("missing scene_transition fade in %q", graph)
	}
	if got := len(Compile(a, 0)); got != 2 {
		t.Fatalf("expected 2 directives, got %d", got)
	}
}

func TestDrawText_WindowAndPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		d        DrawText
		wantSubs []string
	}{
		{
			name:     "center default window",
			d:        DrawText{Text: "Key moment", Position: PositionCenter, Start: 2},
			wantSubs: []string{"x=(w-text_w)/2", "y=(h-text_h)/2", "enable='between(t,2,4)'"},
		},
		{
			name:     "bottom",
			d:        DrawText{Text: "x", Position: PositionBottom, Start: 6, Duration: 2},
			wantSubs: []string{"y=h-text_h-50", "enable='between(t,6,8)'"},
		},
		{
			name:     "top",
			d:        DrawText{Text: "x", Position: PositionTop, Start: 0, Duration: 1},
			wantSubs: []string{"y=50", "enable='between(t,0,1)'"},
		},
		{
			name:     "unknown position is centered",
			d:        DrawText{Text: "x", Position: "diagonal", Start: 1},
			wantSubs: []string{"x=(w-text_w)/2", "y=(h-text_h)/2"},
		},
		{
			name:     "empty text falls back",
			d:        DrawText{Text: "   ", Start: 1},
			wantSubs: []string{"text='Sample Text'"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr := tt.d.Expr()
			for _, sub := range tt.wantSubs {
				if !strings.Contains(expr, sub) {
					t.Fatalf("expected %q in %q", sub, expr)
				}
			}
			if !strings.Contains(expr, "fontsize=48") || !strings.Contains(expr, "boxcolor=black@0.5") {
				t.Fatalf("unexpected styling in %q", expr)
			}
		})
	}
}

func TestEscapeText_HostileInput(t *testing.T) {
	t.Parallel()

	d := DrawText{Text: `it's 100%:,[x]\n`, Start: 0}
	expr := d.Expr()

	// The quote must be closed-escaped-reopened, never left bare.
	if strings.Contains(expr, `text='it's`) {
		t.Fatalf("unescaped quote in %q", expr)
	}
	if !strings.Contains(expr, `it'\''s`) {
		t.Fatalf("expected quote escape sequence in %q", expr)
	}
	if !strings.Contains(expr, `100\%`) {
		t.Fatalf("expected escaped expansion char in %q", expr)
	}
	if !strings.Contains(expr, `\\n`) {
		t.Fatalf("expected escaped backslash in %q", expr)
	}

	// Quote balance: an attacker-controlled text must not be able to
	// terminate the argument early. Walk the expression honoring
	// backslash escapes and require it to end outside a quote.
	inQuote := false
	escaped := false
	for _, r := range expr {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '\'':
			inQuote = !inQuote
		}
	}
	if inQuote || escaped {
		t.Fatalf("unterminated quote or escape in %q", expr)
	}
}

func TestGraph_OrderAndEmpty(t *testing.T) {
	t.Parallel()

	if Graph(nil) != "" {
		t.Fatalf("expected empty graph for no directives")
	}

	ds := []Directive{
		FadeIn{Start: 1},
		Blur{Start: 2, End: 3},
	}
	graph := Graph(ds)
	if !strings.HasPrefix(graph, "fade=") {
		t.Fatalf("expected listed order preserved, got %q", graph)
	}
	if strings.Count(graph, ",") < 1 {
		t.Fatalf("expected comma-joined chain, got %q", graph)
	}
}

func TestEffectDefaults(t *testing.T) {
	t.Parallel()

	if expr := (Blur{Start: 0, End: 1}).Expr(); !strings.Contains(expr, "boxblur=5") {
		t.Fatalf("expected default blur radius, got %q", expr)
	}
	if expr := (Contrast{Start: 0, End: 1}).Expr(); !strings.Contains(expr, "eq=contrast=1.5") {
		t.Fatalf("expected default contrast factor, got %q", expr)
	}
	if expr := (Zoom{Start: 0, End: 1}).Expr(); !strings.Contains(expr, "min(zoom+0.01,1.5)") {
		t.Fatalf("expected default zoom cap, got %q", expr)
	}
	if expr := (Zoom{Start: 1, End: 2, MaxFactor: 1.2}).Expr(); !strings.Contains(expr, "if(between(t,1,2),min(zoom+0.01,1.2),1)") {
		t.Fatalf("unexpected zoom expr %q", expr)
	}
}
