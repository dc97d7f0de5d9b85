package poster

import (
	"fmt"
	"strings"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
)

// ComposeInstruction deterministically assembles the full generation
// instruction from the user's brief, the style deconstruction, and the
// technical settings. Field order is a contract with the model's
// prompt-following behaviour and must not change: vibe, palette, lighting,
// composition, textures, keywords, then the brief and the three settings.
// Every input value appears verbatim in the output.
func ComposeInstruction(brief string, analysis domain.StyleAnalysis, settings domain.Settings) string {
	var b strings.Builder

	b.WriteString("**Primary Goal:** Create a photorealistic, pro-grade, high-resolution promotional poster. ")
	b.WriteString("You are a master of visual effects and 3D rendering. Your task is to integrate a product into a scene ")
	b.WriteString("that perfectly matches the provided style deconstruction and reference image.\n\n")

	b.WriteString("---\n")
	b.WriteString("**Style Deconstruction:**\n")
	fmt.Fprintf(&b, "- **Vibe:** %s\n", analysis.Vibe)
	fmt.Fprintf(&b, "- **Color Palette:** Use this exact palette: %s.\n", strings.Join(analysis.Palette, ", "))
	fmt.Fprintf(&b, "- **Lighting:** Recreate this lighting precisely: %s.\n", analysis.Lighting)
	fmt.Fprintf(&b, "- **Composition:** Follow this compositional rule: %s.\n", analysis.Composition)
	fmt.Fprintf(&b, "- **Textures & Materials:** Incorporate these textures: %s.\n", strings.Join(analysis.Textures, ", "))
	fmt.Fprintf(&b, "- **Keywords:** %s\n", strings.Join(analysis.Keywords, ", "))
	b.WriteString("---\n\n")

	b.WriteString("**Inputs:**\n")
	b.WriteString("1. **Product Image(s):** The primary subject(s).\n")
	b.WriteString("2. **Style Reference Image:** The visual source of the entire aesthetic.\n")
	b.WriteString("3. **Detailed Style Deconstruction:** A JSON-derived analysis of the target aesthetic. Use this for precise instructions.\n")
	fmt.Fprintf(&b, "4. **User's Creative Brief:** \"%s\"\n\n", brief)

	b.WriteString("**Execution Steps & Advanced Techniques:**\n")
	b.WriteString("1. **Analyze Product & Masking:** Identify the product(s). Perform a perfect, high-fidelity background removal ")
	b.WriteString("(alpha masking), preserving all fine details. The product's shape, proportions, and text must be perfectly preserved.\n")
	b.WriteString("2. **Replicate Scene from Reference & Deconstruction:** Use the Style Reference Image as the primary visual guide, ")
	b.WriteString("and the Style Deconstruction text for specific details. You MUST strictly adhere to the reference image's background, ")
	b.WriteString("color palette, lighting, composition, and textures. Do not invent a new style.\n")
	b.WriteString("3. **Composite & Enhance (3D Realism):** Seamlessly integrate the masked product(s) into the newly generated scene. ")
	b.WriteString("Apply PBR materials, inferred normal-map micro detail, subsurface scattering where the product is organic or translucent, ")
	b.WriteString("and realistic contact shadows with a subtle light wrap at the product's edges.\n")
	b.WriteString("4. **Apply Technical Settings:** Strictly adhere to the user's specifications:\n")
	fmt.Fprintf(&b, "   - Aspect Ratio: %s\n", settings.AspectRatio)
	fmt.Fprintf(&b, "   - Lighting Style Override (if user prompt is specific): %s\n", settings.LightingStyle)
	fmt.Fprintf(&b, "   - Camera Perspective: %s\n", settings.CameraPerspective)
	b.WriteString("5. **Final Quality:** The output must be ultra-realistic, with the sharpness and detail of an 8K resolution photograph, ")
	b.WriteString("3D depth, high-end commercial polish, and masterful lighting.\n\n")

	b.WriteString("**Required Text Output:**\n")
	b.WriteString("In addition to the image, you MUST provide a \"master prompt\": a detailed, comprehensive description of the final image ")
	b.WriteString("you created, as if you were instructing another AI. Describe the scene, product integration, 3D enhancements, lighting, ")
	b.WriteString("and style in professional detail. The final output must contain both the generated image and the text master prompt.\n")

	return b.String()
}
