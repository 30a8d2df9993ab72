// Package editplan compiles an AI analysis into a filter graph for the
// external transcoder. Directives are explicit values serialized by this
// package; model-provided text is always escaped, never concatenated raw.
package editplan

import (
	"fmt"
	"strconv"
	"strings"
)

// Position names where an overlay is drawn. Unknown values render centered.
type Position string

const (
	PositionCenter Position = "center"
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

const (
	// DefaultOverlayWindow is how long an overlay stays visible when the
	// suggestion carries no duration.
	DefaultOverlayWindow = 2.0

	defaultOverlayText = "Sample Text"
	overlayFontSize    = 48
	overlayFontColor   = "white"
	overlayBoxColor    = "black@0.5"
	overlayBoxBorder   = 5

	topMargin    = 50
	bottomMargin = 50
)

// Directive is one node of the compiled filter graph.
type Directive interface {
	// Expr renders the directive as a single transcoder filter expression.
	Expr() string
}

// DrawText overlays a caption inside a semi-transparent box for the time
// window [Start, Start+Duration].
type DrawText struct {
	Text     string
	Position Position
	Start    float64
	Duration float64
}

func (d DrawText) Expr() string {
	text := d.Text
	if strings.TrimSpace(text) == "" {
		text = defaultOverlayText
	}

	var x, y string
	switch d.Position {
	case PositionTop:
		x, y = "(w-text_w)/2", strconv.Itoa(topMargin)
	case PositionBottom:
		x, y = "(w-text_w)/2", fmt.Sprintf("h-text_h-%d", bottomMargin)
	default:
		x, y = "(w-text_w)/2", "(h-text_h)/2"
	}

	window := d.Duration
	if window <= 0 {
		window = DefaultOverlayWindow
	}

	return fmt.Sprintf(
		"drawtext=text='%s':fontsize=%d:fontcolor=%s:box=1:boxcolor=%s:boxborderw=%d:x=%s:y=%s:enable='between(t,%s,%s)'",
		escapeText(text),
		overlayFontSize, overlayFontColor, overlayBoxColor, overlayBoxBorder,
		x, y,
		fmtSeconds(d.Start), fmtSeconds(d.Start+window),
	)
}

// Blur softens the picture inside [Start, End]. Radius below 1 falls back
// to the default strength.
type Blur struct {
	Start  float64
	End    float64
	Radius int
}

func (d Blur) Expr() string {
	r := d.Radius
	if r < 1 {
		r = 5
	}
	return fmt.Sprintf("boxblur=%d:enable='between(t,%s,%s)'", r, fmtSeconds(d.Start), fmtSeconds(d.End))
}

// Brightness shifts luma by Delta inside [Start, End].
type Brightness struct {
	Start float64
	End   float64
	Delta float64
}

func (d Brightness) Expr() string {
	return fmt.Sprintf("eq=brightness=%s:enable='between(t,%s,%s)'",
		fmtSeconds(d.Delta), fmtSeconds(d.Start), fmtSeconds(d.End))
}

// Contrast multiplies contrast by Factor inside [Start, End].
type Contrast struct {
	Start  float64
	End    float64
	Factor float64
}

func (d Contrast) Expr() string {
	f := d.Factor
	if f <= 0 {
		f = 1.5
	}
	return fmt.Sprintf("eq=contrast=%s:enable='between(t,%s,%s)'",
		fmtSeconds(f), fmtSeconds(d.Start), fmtSeconds(d.End))
}

// Zoom ramps scale up to MaxFactor while t is inside [Start, End].
type Zoom struct {
	Start     float64
	End       float64
	MaxFactor float64
}

func (d Zoom) Expr() string {
	f := d.MaxFactor
	if f <= 1 {
		f = 1.5
	}
	return fmt.Sprintf("zoompan=z='if(between(t,%s,%s),min(zoom+0.01,%s),1)':d=1",
		fmtSeconds(d.Start), fmtSeconds(d.End), fmtSeconds(f))
}

// FadeIn fades the picture in starting at Start.
type FadeIn struct {
	Start    float64
	Duration float64
}

func (d FadeIn) Expr() string {
	dur := d.Duration
	if dur <= 0 {
		dur = 0.5
	}
	return fmt.Sprintf("fade=t=in:st=%s:d=%s", fmtSeconds(d.Start), fmtSeconds(dur))
}

// Graph joins directives into one filter-graph expression, applied in
// listed order. Overlapping windows compose per the transcoder's own
// filter-chain semantics.
func Graph(directives []Directive) string {
	if len(directives) == 0 {
		return ""
	}
	exprs := make([]string, 0, len(directives))
	for _, d := range directives {
		exprs = append(exprs, d.Expr())
	}
	return strings.Join(exprs, ",")
}

// escapeText escapes a value for a single-quoted filter argument. The
// quote itself must be closed, escaped and reopened; backslash and the
// drawtext expansion char are escaped; control characters become spaces
// so user text cannot terminate the argument or inject directives.
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\'':
			b.WriteString(`'\''`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '%':
			b.WriteString(`\%`)
		case r < 0x20:
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fmtSeconds(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
