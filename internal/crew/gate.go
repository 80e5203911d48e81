// Package crew composes ranked three-officer bridge crews from slot scores.
package crew

import (
	"fmt"

	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
)

// CaptainPool is the set of candidate indexes allowed in the captain's chair for one run.
type CaptainPool struct {
	Indexes []int
	// Fallback is set when no candidate was a viable captain and every candidate was admitted.
	Fallback bool
	// Preferred is set when the caller chose the captain explicitly.
	Preferred bool
}

// noViableCaptainWarning is the run-level reason attached when the gate falls back.
func noViableCaptainWarning(intent types.IntentKey) string {
	return fmt.Sprintf("no viable captains found for intent %s; considering every available officer as captain", intent)
}

// GateCaptains decides which candidates may captain. candidates and captainScores are parallel
// slices; captainScores must be scored for the captain seat.
//
// A preferred captain bypasses viability entirely. Otherwise only viable captains are admitted,
// unless there are none, in which case every candidate is.
func GateCaptains(candidates []types.Officer, captainScores []*scoring.Breakdown, preferred types.OfficerID) CaptainPool {
	if preferred != "" {
		for i, o := range candidates {
			if o.ID == preferred {
				return CaptainPool{Indexes: []int{i}, Preferred: true}
			}
		}
		return CaptainPool{Preferred: true}
	}

	var viable []int
	for i, b := range captainScores {
		if b.ViableCaptain {
			viable = append(viable, i)
		}
	}
	if len(viable) > 0 {
		return CaptainPool{Indexes: viable}
	}

	all := make([]int, len(candidates))
	for i := range candidates {
		all[i] = i
	}
	return CaptainPool{Indexes: all, Fallback: len(all) > 0}
}
