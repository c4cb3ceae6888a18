package describe

import (
	"encoding/json"
	"fmt"
	"strings"

	"fitted/internal/domain"
)

// ParseDescription extracts the JSON object from a vision backend reply and
// validates it into an OutfitDescription. The only formatting noise
// tolerated is a markdown code fence wrapped around the payload; any other
// deviation is fatal for the caller, never silently recovered.
func ParseDescription(text string) (domain.OutfitDescription, error) {
	payload := trimCodeFence(text)
	if payload == "" {
		return domain.OutfitDescription{}, fmt.Errorf("%w: empty response", domain.ErrBadModelOutput)
	}
	var desc domain.OutfitDescription
	if err := json.Unmarshal([]byte(payload), &desc); err != nil {
		return domain.OutfitDescription{}, fmt.Errorf("%w: %v", domain.ErrBadModelOutput, err)
	}
	if strings.TrimSpace(desc.Description) == "" {
		return domain.OutfitDescription{}, fmt.Errorf("%w: missing description field", domain.ErrBadModelOutput)
	}
	if strings.TrimSpace(desc.FitNotes) == "" {
		return domain.OutfitDescription{}, fmt.Errorf("%w: missing fit_notes field", domain.ErrBadModelOutput)
	}
	if len(desc.Colors) == 0 {
		return domain.OutfitDescription{}, fmt.Errorf("%w: missing colors field", domain.ErrBadModelOutput)
	}
	if strings.TrimSpace(desc.Style) == "" {
		return domain.OutfitDescription{}, fmt.Errorf("%w: missing style field", domain.ErrBadModelOutput)
	}
	return desc, nil
}

// trimCodeFence strips a surrounding markdown fence: everything up to and
// including the first line break goes, as does everything from the last
// fence marker onward.
func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
