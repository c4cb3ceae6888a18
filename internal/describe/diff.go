package describe

import (
	"strings"

	"fitted/internal/domain"
)

// Changes reports which fields differ between two descriptions. The update
// contract says only the requested attribute may change; the correctness of
// that depends entirely on the backend following instructions, so callers
// log wider drift as a warning instead of blocking on it.
func Changes(old, updated domain.OutfitDescription) []string {
	var changed []string
	if old.Description != updated.Description {
		changed = append(changed, "description")
	}
	if old.FitNotes != updated.FitNotes {
		changed = append(changed, "fit_notes")
	}
	if !equalColors(old.Colors, updated.Colors) {
		changed = append(changed, "colors")
	}
	if old.Style != updated.Style {
		changed = append(changed, "style")
	}
	return changed
}

// equalColors compares color lists ignoring order and case.
func equalColors(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, c := range a {
		seen[strings.ToLower(strings.TrimSpace(c))]++
	}
	for _, c := range b {
		key := strings.ToLower(strings.TrimSpace(c))
		if seen[key] == 0 {
			return false
		}
		seen[key]--
	}
	return true
}
