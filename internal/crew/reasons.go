// Package crew composes ranked three-officer bridge crews from slot scores.
package crew

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
)

// maxEffectReasons is how many top effects a result cites
const maxEffectReasons = 3

// seat is one officer in one bridge seat of a trio.
type seat struct {
	officer   types.Officer
	breakdown *scoring.Breakdown
}

type citedContribution struct {
	seat         seat
	contribution scoring.Contribution
}

var abilitySlotLabels = map[types.AbilitySlot]string{
	types.AbilitySlotCaptainManeuver: "captain maneuver",
	types.AbilitySlotOfficerAbility:  "officer ability",
	types.AbilitySlotBelowDeck:       "below deck ability",
}

// topContributions orders the non-zero contributions of a trio by magnitude.
func topContributions(seats []seat) []citedContribution {
	var cited []citedContribution
	for _, s := range seats {
		for _, c := range s.breakdown.Contributions {
			if c.Value == 0 {
				continue
			}
			cited = append(cited, citedContribution{seat: s, contribution: c})
		}
	}
	sort.SliceStable(cited, func(i, j int) bool {
		a, b := cited[i], cited[j]
		if math.Abs(a.contribution.Value) != math.Abs(b.contribution.Value) {
			return math.Abs(a.contribution.Value) > math.Abs(b.contribution.Value)
		}
		if a.contribution.EffectKey != b.contribution.EffectKey {
			return a.contribution.EffectKey < b.contribution.EffectKey
		}
		return a.seat.officer.ID < b.seat.officer.ID
	})
	return cited
}

func describeContribution(c citedContribution) string {
	var qualifiers []string
	qualifiers = append(qualifiers, string(c.seat.breakdown.Slot))
	if label, ok := abilitySlotLabels[c.contribution.AbilitySlot]; ok {
		qualifiers = append(qualifiers, label)
	}
	if c.contribution.Conditional {
		qualifiers = append(qualifiers, "conditional")
	}
	if !c.contribution.Known {
		qualifiers = append(qualifiers, "estimated")
	}
	return fmt.Sprintf("%s %+.1f from %s (%s)",
		c.contribution.EffectKey, c.contribution.Value, c.seat.officer.DisplayName(), strings.Join(qualifiers, ", "))
}

// buildReasons explains a trio: its strongest effects, synergy, and soft reservations.
func buildReasons(seats []seat, shared int, group types.SynergyGroupID, multiplier float64) []string {
	reasons := []string{}

	cited := topContributions(seats)
	for i := 0; i < len(cited) && i < maxEffectReasons; i++ {
		reasons = append(reasons, describeContribution(cited[i]))
	}
	if len(cited) == 0 {
		reasons = append(reasons, "no applicable effects; ranked on readiness only")
	}

	if multiplier > 1 {
		who := "two officers share"
		if shared >= 3 {
			who = "all three officers share"
		}
		reasons = append(reasons, fmt.Sprintf("synergy: %s group %s (x%.2f)", who, group, multiplier))
	}

	for _, s := range seats {
		if s.breakdown.ReservedFor != "" {
			reasons = append(reasons, fmt.Sprintf("%s is soft-reserved for %s", s.officer.DisplayName(), s.breakdown.ReservedFor))
		}
	}
	return reasons
}
