package poster

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
	"github.com/bsatnami/Ai-Masterji/internal/genai"
)

// StructuredClient produces schema-constrained JSON from content parts.
type StructuredClient interface {
	AnalyzeJSON(ctx context.Context, parts []genai.Part, schema *genai.Schema) ([]byte, error)
}

// SynthesisClient produces mixed image/text parts from content parts.
type SynthesisClient interface {
	Synthesize(ctx context.Context, parts []genai.Part) ([]genai.Part, error)
}

const analysisPrompt = `As a professional creative director, analyze the provided style reference image. Deconstruct its aesthetic into a structured JSON format. Your analysis must be precise and detailed.
- "palette": Extract exactly 5-7 dominant and accent colors as HEX codes.
- "lighting": Describe the lighting style (e.g., 'warm rim light', 'soft diffuse studio light', 'dramatic chiaroscuro').
- "composition": Describe the compositional principles (e.g., 'Rule of Thirds, subject on left vertical', 'Centered hero shot', 'Dynamic leading lines').
- "textures": Identify key surface textures (e.g., 'rough canvas', 'glossy plastic', 'metallic sheen', 'soft fabric').
- "vibe": Summarize the overall mood or artistic vibe in one or two words (e.g., 'Minimalist & Clean', 'Retro & Grungy', 'Epic & Cinematic').
- "keywords": Provide a list of relevant keywords that describe the style, elements, and mood.`

var analysisSchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"palette":     {Type: "ARRAY", Items: &genai.Schema{Type: "STRING"}},
		"lighting":    {Type: "STRING"},
		"composition": {Type: "STRING"},
		"textures":    {Type: "ARRAY", Items: &genai.Schema{Type: "STRING"}},
		"vibe":        {Type: "STRING"},
		"keywords":    {Type: "ARRAY", Items: &genai.Schema{Type: "STRING"}},
	},
}

// Analyzer derives a structured style description from a style-reference
// image with a single external call.
type Analyzer struct {
	client StructuredClient
}

// NewAnalyzer constructs an Analyzer over the given client.
func NewAnalyzer(client StructuredClient) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze submits the style asset and parses the structured response. A
// response whose palette is missing, empty, or not an array fails with
// domain.ErrAnalysis; the caller decides whether the result is still wanted
// (it may have been superseded by a newer style upload).
func (a *Analyzer) Analyze(ctx context.Context, style domain.Asset) (domain.StyleAnalysis, error) {
	parts := []genai.Part{
		genai.ImagePart(style.MIME, style.Data),
		genai.TextPart(analysisPrompt),
	}

	raw, err := a.client.AnalyzeJSON(ctx, parts, analysisSchema)
	if err != nil {
		return domain.StyleAnalysis{}, fmt.Errorf("%w: %v", domain.ErrAnalysis, err)
	}

	var analysis domain.StyleAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return domain.StyleAnalysis{}, fmt.Errorf("%w: invalid JSON structure: %v", domain.ErrAnalysis, err)
	}
	if len(analysis.Palette) == 0 {
		return domain.StyleAnalysis{}, fmt.Errorf("%w: response has no palette", domain.ErrAnalysis)
	}
	return analysis, nil
}
