package poster

import (
	"context"
	"fmt"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
	"github.com/bsatnami/Ai-Masterji/internal/genai"
)

// Generator submits product and style assets plus the composed instruction to
// the synthesis capability and folds the response into a PosterRecord.
type Generator struct {
	client SynthesisClient
}

// NewGenerator constructs a Generator over the given client.
func NewGenerator(client SynthesisClient) *Generator {
	return &Generator{client: client}
}

// Generate runs one synthesis call. All preconditions are checked before any
// external call is made. Response policy: the first image part becomes the
// poster image, the first text part becomes the master prompt; a response
// without an image part is fatal for the call.
func (g *Generator) Generate(ctx context.Context, products []domain.Asset, style *domain.Asset, analysis *domain.StyleAnalysis, settings domain.Settings) (domain.PosterRecord, error) {
	if len(products) == 0 {
		return domain.PosterRecord{}, fmt.Errorf("%w: no product images", domain.ErrPrecondition)
	}
	if style == nil {
		return domain.PosterRecord{}, fmt.Errorf("%w: no style reference image", domain.ErrPrecondition)
	}
	if analysis == nil {
		return domain.PosterRecord{}, fmt.Errorf("%w: style analysis not ready", domain.ErrPrecondition)
	}

	instruction := ComposeInstruction(settings.Prompt, *analysis, settings)

	parts := make([]genai.Part, 0, len(products)+2)
	for _, p := range products {
		parts = append(parts, genai.ImagePart(p.MIME, p.Data))
	}
	parts = append(parts, genai.ImagePart(style.MIME, style.Data))
	parts = append(parts, genai.TextPart(instruction))

	resp, err := g.client.Synthesize(ctx, parts)
	if err != nil {
		return domain.PosterRecord{}, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	var image []byte
	var mime string
	masterPrompt := domain.DefaultMasterPrompt
	haveText := false
	for _, part := range resp {
		if image == nil && part.IsImage() {
			image = part.Data
			mime = part.MIME
			continue
		}
		if !haveText && part.IsText() {
			masterPrompt = part.Text
			haveText = true
		}
	}
	if image == nil {
		return domain.PosterRecord{}, fmt.Errorf("%w: no image returned", domain.ErrGeneration)
	}

	return domain.NewPosterRecord(mime, image, masterPrompt, map[string]string{
		"aspect_ratio":       settings.AspectRatio,
		"lighting_style":     settings.LightingStyle,
		"camera_perspective": settings.CameraPerspective,
	}), nil
}
