package domain

// OutfitDescription is the structured result of classifying an outfit
// image. Values are immutable: an update always produces a new description
// so the previous one stays available for comparison.
type OutfitDescription struct {
	Description string   `json:"description"`
	FitNotes    string   `json:"fit_notes"`
	Colors      []string `json:"colors"`
	Style       string   `json:"style"`
}
