// Package completion implements the analyzer port against an
// OpenAI-style chat-completions endpoint. Sampled still frames are
// attached inline as base64 data URIs.
package completion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/jsonx"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

const (
	requestTimeout = 90 * time.Second

	// maxInlineBytes is the upstream ceiling on inline payloads; frames
	// that would push the request past it are left out.
	maxInlineBytes = 20 * 1024 * 1024
)

type Adapter struct {
	key         string
	model       string
	baseURL     string
	temperature float64
	client      *http.Client
}

func New(apiKey, model, baseURL string, temperature float64) *Adapter {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Adapter{
		key:         apiKey,
		model:       model,
		baseURL:     normalizeBaseURL(baseURL),
		temperature: temperature,
		client:      &http.Client{Timeout: 5 * time.Minute},
	}
}

// Analyze submits the analysis prompt (plus any sampled frames) and decodes
// the model reply into an edit plan. Transport and API failures degrade to
// the fixed mock plan, flagged Mock; an unparseable reply comes back with
// the parse error and raw text on the result.
func (a *Adapter) Analyze(ctx context.Context, videoPath string, framePaths []string) (types.AnalysisResult, error) {
	payload := map[string]any{
		"model":       a.model,
		"temperature": a.temperature,
		"messages": []map[string]any{
			{"role": "user", "content": buildContent(videoPath, framePaths)},
		},
		"response_format": map[string]any{"type": "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return types.AnalysisResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return types.AnalysisResult{}, ctx.Err()
		}
		return MockResult(), nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return MockResult(), nil
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return MockResult(), nil
	}
	if len(raw.Choices) == 0 {
		return MockResult(), nil
	}

	content, err := contentToString(raw.Choices[0].Message.Content)
	if err != nil {
		return MockResult(), nil
	}

	analysis, err := jsonx.Decode[types.Analysis](content)
	if err != nil {
		return types.AnalysisResult{Err: err.Error(), Raw: content}, nil
	}
	return types.AnalysisResult{Analysis: analysis}, nil
}

// buildContent returns either the plain prompt string or a multimodal part
// list with inline frame images, capped by the upstream payload ceiling.
func buildContent(videoPath string, framePaths []string) any {
	prompt := analysisPrompt(videoPath)
	if len(framePaths) == 0 {
		return prompt
	}

	parts := []map[string]any{
		{"type": "text", "text": prompt},
	}
	var total int
	for i, fp := range framePaths {
		data, err := os.ReadFile(fp)
		if err != nil {
			continue
		}
		if total+len(data) > maxInlineBytes {
			break
		}
		total += len(data)
		parts = append(parts,
			map[string]any{
				"type": "text",
				"text": fmt.Sprintf("Frame %d (%s):", i+1, filepath.Base(fp)),
			},
			map[string]any{
				"type": "image_url",
				"image_url": map[string]any{
					"url": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data),
				},
			},
		)
	}
	return parts
}

func contentToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []any:
		// Some providers return an array of {type,text} parts.
		var b strings.Builder
		for _, it := range x {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := m["text"].(string); ok {
				b.WriteString(t)
			}
		}
		s := b.String()
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("empty content")
		}
		return s, nil
	default:
		return "", fmt.Errorf("unexpected content type %T", v)
	}
}
