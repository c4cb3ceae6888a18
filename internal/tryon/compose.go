package tryon

import (
	"fmt"

	"fitted/internal/imageprep"
	"fitted/internal/providers/synth"
)

// The anchors repeat in every prompt variant. Image models drift on
// identity and garment detail unless both are restated verbatim each call.
const (
	identityAnchor = "Keep the same face along with the original facial structure, " +
		"facial expression, and skin tone. Keep the original hair. " +
		"Same body type and proportions."

	garmentAnchor = "Reproduce the clothing EXACTLY as shown — do not alter sleeve " +
		"length, cuffs, collars, zippers, or any garment details. No rolling, " +
		"cuffing, or tucking unless explicitly described. Do NOT add any head or " +
		"face accessories (no hats, glasses, face masks, scarves on head, " +
		"headbands) unless the user explicitly requests them. Only apply clothing " +
		"from the neck down."

	closingClause = "Photorealistic, natural lighting, full body shot."
)

// Composition is a ready-to-send synthesis job: the prompt plus the ordered
// reference images. Image order matters to the backend; the person always
// comes first.
type Composition struct {
	Mode   Mode
	Prompt string
	Images []synth.InputImage
}

// ComposeInitial dresses the person from the first image in the outfit from
// the second, guided by the structured description.
func ComposeInitial(description string, user, outfit imageprep.Prepared) Composition {
	prompt := fmt.Sprintf(
		"Dress the person from the first image in the complete outfit from the second image.\n"+
			"Outfit details: %s\n%s\n%s\n%s",
		description, identityAnchor, garmentAnchor, closingClause,
	)
	return Composition{
		Mode:   ModeInitial,
		Prompt: prompt,
		Images: inputImages(user, outfit),
	}
}

// ComposeLayering adds the garment from the third image on top of the
// already rendered outfit in the second image, guided by the updated
// outfit description that already incorporates the new item.
func ComposeLayering(description string, user, previous, newItem imageprep.Prepared) Composition {
	prompt := fmt.Sprintf(
		"The first image is the person. The second image shows their current outfit; keep it EXACTLY as it is.\n"+
			"Add ONLY the item from the third image on top of the current outfit.\n"+
			"The complete outfit after the addition: %s\n"+
			"Do not change, remove, or re-render any garment already worn.\n%s\n%s\n%s",
		description, identityAnchor, garmentAnchor, closingClause,
	)
	return Composition{
		Mode:   ModeLayering,
		Prompt: prompt,
		Images: inputImages(user, previous, newItem),
	}
}

// ComposeTextModify re-renders the previous result with the edited
// description applied. Both anchors still hold; only the described change
// may differ from the second image.
func ComposeTextModify(description string, user, previous imageprep.Prepared) Composition {
	prompt := fmt.Sprintf(
		"The first image is the person. The second image shows their current outfit.\n"+
			"Re-render the outfit with this updated description, changing ONLY what differs from the second image: %s\n%s\n%s\n%s",
		description, identityAnchor, garmentAnchor, closingClause,
	)
	return Composition{
		Mode:   ModeTextModify,
		Prompt: prompt,
		Images: inputImages(user, previous),
	}
}

func inputImages(prepared ...imageprep.Prepared) []synth.InputImage {
	images := make([]synth.InputImage, 0, len(prepared))
	for _, p := range prepared {
		images = append(images, synth.InputImage{MIMEType: "image/jpeg", Data: p.Data})
	}
	return images
}
