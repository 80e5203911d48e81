// Package scoring scores a single officer for a single bridge seat under one planning intent.
package scoring

import "github.com/jonathan/majel/internal/types"

const (
	// readinessPowerPoints is the readiness credit of the strongest officer in the call
	readinessPowerPoints = 2.0
	// readinessRankPoints is the readiness credit of a max-rank officer
	readinessRankPoints = 1.0
	// officerLevelCap stands in for maxPower when no power figures are available
	officerLevelCap = 60.0
	// officerRankCap is the highest officer rank
	officerRankCap = 5.0
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// computeReadiness scores how built-up an officer is, independent of any effect.
// Never negative, so an officer with nothing known about its abilities stays usable.
func computeReadiness(officer types.Officer, maxPower float64) float64 {
	var powerRatio float64
	if maxPower > 0 && officer.Power > 0 {
		powerRatio = clamp01(officer.Power / maxPower)
	} else {
		powerRatio = clamp01(float64(officer.Level) / officerLevelCap)
	}
	rankRatio := clamp01(float64(officer.Rank) / officerRankCap)
	return readinessPowerPoints*powerRatio + readinessRankPoints*rankRatio
}
