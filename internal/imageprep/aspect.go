package imageprep

import (
	"math"
	"strconv"
	"strings"
)

// SupportedAspectRatios are the output frames the synthesis backend accepts.
// Order matters: ties on distance resolve to the earlier entry.
var SupportedAspectRatios = []string{
	"1:1", "4:3", "3:4", "16:9", "9:16",
	"3:2", "2:3", "4:5", "5:4", "21:9", "9:21",
}

// PickAspectRatio returns the supported ratio numerically closest to
// width/height. It is computed from the user's reference photo so the
// output frame matches the subject's real proportions regardless of which
// reference images get layered in later.
func PickAspectRatio(width, height int) string {
	if width <= 0 || height <= 0 {
		return "3:4"
	}
	target := float64(width) / float64(height)
	best := SupportedAspectRatios[0]
	bestDiff := math.Inf(1)
	for _, label := range SupportedAspectRatios {
		value, ok := ratioValue(label)
		if !ok {
			continue
		}
		if diff := math.Abs(target - value); diff < bestDiff {
			bestDiff = diff
			best = label
		}
	}
	return best
}

func ratioValue(label string) (float64, bool) {
	parts := strings.SplitN(label, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, false
	}
	return float64(w) / float64(h), true
}
