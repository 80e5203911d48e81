// Package crew composes ranked three-officer bridge crews from slot scores.
package crew

import (
	"math"

	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
)

const (
	// highConfidenceShare is the minimum certain share of contribution for high confidence
	highConfidenceShare = 0.75
	// lowConfidenceShare is the certain share below which confidence is low
	lowConfidenceShare = 0.40
)

// certainShare is the fraction of absolute effect contribution that comes from known,
// unconditional, catalogued effects. ok is false when nothing contributed.
func certainShare(contributions []scoring.Contribution) (share float64, ok bool) {
	var certain, total float64
	for _, c := range contributions {
		v := math.Abs(c.Value)
		total += v
		if c.Certain() {
			certain += v
		}
	}
	if total == 0 {
		return 0, false
	}
	return certain / total, true
}

// classifyConfidence buckets a trio by how much of its effect score rests on certain data.
func classifyConfidence(contributions []scoring.Contribution) types.Confidence {
	share, ok := certainShare(contributions)
	switch {
	case !ok:
		return types.ConfidenceLow
	case share >= highConfidenceShare:
		return types.ConfidenceHigh
	case share < lowConfidenceShare:
		return types.ConfidenceLow
	default:
		return types.ConfidenceMedium
	}
}
