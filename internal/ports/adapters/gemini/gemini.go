// Package gemini implements the analyzer port by sending the video itself
// to the Gemini API as an inline blob, instead of sampling still frames.
package gemini

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/jsonx"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/ports/adapters/completion"
	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

// maxInlineBytes is the inline-payload ceiling of the Gemini API; larger
// videos would need the Files API, which this tool does not use.
const maxInlineBytes = 20 * 1024 * 1024

type Adapter struct {
	client      *genai.Client
	model       string
	temperature float32
}

func New(ctx context.Context, apiKey, model string, temperature float64) (*Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Adapter{client: client, model: model, temperature: float32(temperature)}, nil
}

// Analyze uploads the video inline and decodes the reply into an edit plan.
// framePaths is ignored: this backend sees the full video. Transport and
// API failures degrade to the fixed mock plan; oversized inputs are
// treated the same way since the model never saw the video.
func (a *Adapter) Analyze(ctx context.Context, videoPath string, _ []string) (types.AnalysisResult, error) {
	blob, err := readVideoBlob(videoPath)
	if err != nil {
		return completion.MockResult(), nil
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: videoPrompt()},
			{InlineData: blob},
		},
	}}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(a.temperature),
		ResponseMIMEType: "application/json",
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		if ctx.Err() != nil {
			return types.AnalysisResult{}, ctx.Err()
		}
		return completion.MockResult(), nil
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return completion.MockResult(), nil
	}

	analysis, err := jsonx.Decode[types.Analysis](text)
	if err != nil {
		return types.AnalysisResult{Err: err.Error(), Raw: text}, nil
	}
	return types.AnalysisResult{Analysis: analysis}, nil
}

func readVideoBlob(videoPath string) (*genai.Blob, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxInlineBytes {
		return nil, fmt.Errorf("video %s exceeds inline ceiling (%d bytes)", videoPath, info.Size())
	}

	data, err := os.ReadFile(videoPath)
	if err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(videoPath))
	if mimeType == "" || !strings.HasPrefix(mimeType, "video/") {
		mimeType = "video/mp4"
	}
	return &genai.Blob{MIMEType: mimeType, Data: data}, nil
}

func videoPrompt() string {
	return `Analyze this video and identify specific timestamps that need editing.

For each edit point, provide:
1. The exact timestamp range (in seconds)
2. What edit to apply (text overlay, effect, scene transition)
3. The specific text or effect details

Provide your analysis in JSON format with this exact structure:
{
    "frames_to_edit": [
        {"start": 0.0, "end": 2.0, "type": "text_overlay"}
    ],
    "enhancement_types": ["text_overlay", "effect_enhancement", "scene_transition"],
    "text_overlay_suggestions": [
        {"timestamp": 1.0, "text": "Key moment", "position": "center"}
    ],
    "effect_recommendations": [
        {"timestamp": 1.5, "effect": "highlight", "intensity": 0.7}
    ],
    "priority_scores": [8, 6, 9]
}

Identify 3-5 key moments that would benefit from enhancement. Return ONLY valid JSON.`
}
