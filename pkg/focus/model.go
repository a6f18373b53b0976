package focus

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/menta2k/collage-kit/pkg/client"
	"github.com/menta2k/collage-kit/pkg/processing"
	"github.com/menta2k/collage-kit/pkg/types"
)

// DefaultPrompt asks a vision model for the dominant subject of a panel image
const DefaultPrompt = `You are an image subject locator.

Return JSON only:
{
  "primary": {
    "label": "string",
    "confidence": 0.0,
    "box": {"x": 0.0, "y": 0.0, "w": 0.0, "h": 0.0},
    "cx": 0.0,
    "cy": 0.0
  },
  "description": "short neutral sentence (<= 20 words)",
  "tags": ["tag1", "tag2", "tag3"]
}

HARD RULES
- All coordinates are normalized to [0,1] (NOT pixels).
- The box should tightly include the visually dominant subject (prefer people/vehicles/animals; else the most central salient object).
- If no subject is found, return label "none" with confidence 0.0.
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

// ModelFocuser asks a vision model where the subject is and focuses the
// point of the subject box closest to the image center
type ModelFocuser struct {
	Client        client.VisionClient
	Model         string
	Prompt        string
	MinConfidence float64
	SendSize      int
	SendQuality   int

	processor *processing.Processor
}

// NewModelFocuser creates a model focuser with the default prompt
func NewModelFocuser(c client.VisionClient, model string) *ModelFocuser {
	return &ModelFocuser{
		Client:        c,
		Model:         model,
		Prompt:        DefaultPrompt,
		MinConfidence: 0.3,
		SendSize:      768,
		SendQuality:   85,
		processor:     processing.NewProcessor(),
	}
}

// Focus sends a downscaled JPEG of img to the model. Answers below
// MinConfidence, or without a subject, focus the center.
func (m *ModelFocuser) Focus(ctx context.Context, img image.Image) (float64, float64, error) {
	data, prompt, err := m.request(img)
	if err != nil {
		return 0, 0, err
	}
	result, err := m.Client.AnalyzeImage(ctx, m.Model, prompt, data)
	if err != nil {
		return 0, 0, fmt.Errorf("analyze image: %w", err)
	}

	cx, cy := focusFromResult(result, m.MinConfidence)
	return cx, cy, nil
}

// Describe returns the model's unparsed answer to the focus prompt
func (m *ModelFocuser) Describe(ctx context.Context, img image.Image) (string, error) {
	data, prompt, err := m.request(img)
	if err != nil {
		return "", err
	}
	answer, err := m.Client.SimpleQuery(ctx, m.Model, prompt, data)
	if err != nil {
		return "", fmt.Errorf("query model: %w", err)
	}
	return answer, nil
}

func (m *ModelFocuser) request(img image.Image) ([]byte, string, error) {
	if m.Client == nil {
		return nil, "", fmt.Errorf("model focuser has no vision client")
	}
	if m.processor == nil {
		m.processor = processing.NewProcessor()
	}

	data, err := m.processor.EncodeForModel(img, "jpg", m.SendSize, m.SendQuality)
	if err != nil {
		return nil, "", fmt.Errorf("encode for model: %w", err)
	}
	prompt := m.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return data, prompt, nil
}

func focusFromResult(result *types.AnalysisResult, minConfidence float64) (float64, float64) {
	if result == nil || strings.EqualFold(result.Primary.Label, "none") || result.Primary.Confidence < minConfidence {
		return 0.5, 0.5
	}
	box := normalizeBox(result.Primary.Box)
	if box.W <= 0 || box.H <= 0 {
		return 0.5, 0.5
	}
	return clamp(0.5, box.X, box.X+box.W), clamp(0.5, box.Y, box.Y+box.H)
}

// normalizeBox keeps the box inside the unit square
func normalizeBox(b types.Box) types.Box {
	x := clamp(b.X, 0, 1)
	y := clamp(b.Y, 0, 1)
	return types.Box{
		X: x,
		Y: y,
		W: clamp(b.W, 0, 1-x),
		H: clamp(b.H, 0, 1-y),
	}
}
