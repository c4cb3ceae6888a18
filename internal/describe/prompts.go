package describe

import (
	"fmt"
	"strings"
)

const classifyPrompt = `Analyze this clothing image. Return a JSON object with:
{
    "description": "detailed description of the full outfit including all visible garments, colors, and materials",
    "fit_notes": "fit and silhouette notes (e.g. oversized, slim, relaxed)",
    "colors": ["color1", "color2"],
    "style": "style category (e.g. streetwear, smart casual, formal)"
}
Only return valid JSON, no other text.`

const newImageClause = "The user also provided a new garment image (attached). " +
	"Incorporate this item into the outfit description."

const updateRules = `IMPORTANT RULES:
- ONLY change what the user explicitly asked to change
- Keep ALL other details EXACTLY as they are in the current description
- Do NOT add new details, embellishments, seams, stitching, or features that aren't in the current description
- Do NOT re-interpret or re-analyze the outfit, just apply the requested change
- If the user says "make the pants black", change ONLY the pants color to black. Everything else stays identical.

Return the updated JSON:
{
    "description": "the current description with ONLY the requested change applied",
    "fit_notes": "keep existing fit notes, only update if the user's change affects fit",
    "colors": ["updated", "color", "list"],
    "style": "style category"
}
Only return valid JSON, no other text.`

// buildUpdatePrompt embeds the exact current description as ground truth,
// states the single requested change and forbids inventing anything else.
func buildUpdatePrompt(current, instruction string, hasNewImage bool) string {
	sb := &strings.Builder{}
	sb.WriteString("You are editing a clothing outfit description. Here is the CURRENT description (treat this as the source of truth):\n\n")
	sb.WriteString(current)
	fmt.Fprintf(sb, "\n\nThe user wants ONE specific change: %q\n\n", instruction)
	if hasNewImage {
		sb.WriteString(newImageClause)
		sb.WriteString("\n\n")
	}
	sb.WriteString(updateRules)
	return sb.String()
}
