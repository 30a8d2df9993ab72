// Package frames holds the timestamp arithmetic for frame sampling and the
// on-disk naming of per-segment extraction directories.
package frames

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

// EvenTimestamps returns n timestamps evenly spaced across a video of the
// given duration: interval = duration/(n+1), timestamp_i = interval*(i+1).
// All results are strictly increasing and inside (0, duration).
func EvenTimestamps(duration float64, n int) []float64 {
	if duration <= 0 || n <= 0 {
		return nil
	}
	interval := duration / float64(n+1)
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, interval*float64(i+1))
	}
	return out
}

// SegmentTimestamps samples [start, end] at the given interval, capped at
// max frames. The segment start itself is always the first sample.
func SegmentTimestamps(start, end, interval float64, max int) []float64 {
	if end < start || max <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = 1
	}
	out := make([]float64, 0, max)
	for ts := start; ts <= end && len(out) < max; ts += interval {
		out = append(out, ts)
	}
	return out
}

// SegmentDir names the extraction directory for instruction i, e.g.
// "segment_0_text_overlay". Unknown kinds keep whatever the model sent,
// reduced to a safe path segment.
func SegmentDir(root string, i int, kind types.EditKind) string {
	k := sanitizeSegment(string(kind))
	if k == "" {
		k = "unknown"
	}
	return filepath.Join(root, fmt.Sprintf("segment_%d_%s", i, k))
}

// Stem returns the video file name without directory or extension.
func Stem(videoPath string) string {
	return strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
}

func sanitizeSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
