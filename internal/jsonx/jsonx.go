// Package jsonx recovers JSON from model replies that may be wrapped in
// markdown code fences or surrounded by prose.
package jsonx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ExtractObject returns the first JSON object found in s, stripping any
// markdown code fence first. Best-effort: it takes the span from the first
// "{" to the last "}".
func ExtractObject(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errors.New("empty content")
	}

	if strings.HasPrefix(t, "```") {
		// Drop the opening fence line.
		if i := strings.Index(t, "\n"); i >= 0 {
			t = t[i+1:]
		}
		// Drop the trailing fence.
		if j := strings.LastIndex(t, "```"); j >= 0 {
			t = t[:j]
		}
		t = strings.TrimSpace(t)
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in: %q", truncate(t, 200))
	}
	return t[start : end+1], nil
}

// Decode extracts a JSON object from raw model text and unmarshals it into T.
func Decode[T any](raw string) (T, error) {
	var out T
	obj, err := ExtractObject(raw)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return out, fmt.Errorf("invalid JSON: %w (text: %s)", err, truncate(obj, 200))
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
