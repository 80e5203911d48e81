// Package crew composes ranked three-officer bridge crews from slot scores.
package crew

import "github.com/jonathan/majel/internal/types"

const (
	// synergyNone applies when no two officers share a group
	synergyNone = 1.0
	// synergyPair applies when exactly two of the three share a group
	synergyPair = 1.1
	// synergyFull applies when all three share a group
	synergyFull = 1.25
)

// sharedGroup returns the largest number of officers sharing one non-empty synergy group, and
// that group.
func sharedGroup(officers ...types.Officer) (int, types.SynergyGroupID) {
	counts := make(map[types.SynergyGroupID]int, len(officers))
	best := 0
	var group types.SynergyGroupID
	for _, o := range officers {
		if o.SynergyGroup == "" {
			continue
		}
		counts[o.SynergyGroup]++
		n := counts[o.SynergyGroup]
		if n > best || (n == best && o.SynergyGroup < group) {
			best = n
			group = o.SynergyGroup
		}
	}
	return best, group
}

// synergyMultiplier maps the shared-group count of a trio to its score multiplier. The result
// is never below one and strictly increases with the count.
func synergyMultiplier(shared int) float64 {
	switch {
	case shared >= 3:
		return synergyFull
	case shared == 2:
		return synergyPair
	default:
		return synergyNone
	}
}
