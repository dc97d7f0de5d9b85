package poster

import (
	"context"
	"fmt"
	"strings"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
	"github.com/bsatnami/Ai-Masterji/internal/genai"
)

const editTemplate = `Apply this edit to the image: "%s". Only change what is requested and preserve the rest of the image quality and style.`

// EditPromptPrefix marks edited records; the full provenance chain of every
// prior prompt is preserved below it.
const EditPromptPrefix = "EDIT: "

// Editor applies a short instruction to an existing poster image, producing a
// new immutable record rather than mutating the source.
type Editor struct {
	client SynthesisClient
}

// NewEditor constructs an Editor over the given client.
func NewEditor(client SynthesisClient) *Editor {
	return &Editor{client: client}
}

// Edit submits the source image plus the wrapped instruction. The response is
// expected to contain an image part; any text part is ignored. The new
// record's prompt chains the edit onto the source prompt and keeps the source
// display name.
func (e *Editor) Edit(ctx context.Context, source domain.PosterRecord, instruction string) (domain.PosterRecord, error) {
	instruction = strings.TrimSpace(instruction)
	if len(source.Image) == 0 {
		return domain.PosterRecord{}, fmt.Errorf("%w: source poster has no image", domain.ErrPrecondition)
	}
	if instruction == "" {
		return domain.PosterRecord{}, fmt.Errorf("%w: edit instruction is empty", domain.ErrPrecondition)
	}

	mime := source.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	parts := []genai.Part{
		genai.ImagePart(mime, source.Image),
		genai.TextPart(fmt.Sprintf(editTemplate, instruction)),
	}

	resp, err := e.client.Synthesize(ctx, parts)
	if err != nil {
		return domain.PosterRecord{}, fmt.Errorf("%w: %v", domain.ErrEdit, err)
	}

	for _, part := range resp {
		if part.IsImage() {
			record := domain.NewPosterRecord(part.MIME, part.Data,
				EditPromptPrefix+instruction+"\n\n"+source.Prompt, source.Metadata)
			record.Name = source.Name
			return record, nil
		}
	}
	return domain.PosterRecord{}, fmt.Errorf("%w: no image returned", domain.ErrEdit)
}
