package crew

import (
	"fmt"

	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
)

// OfficerNotFoundError is returned when a seat is scored for an officer missing from the roster.
type OfficerNotFoundError struct {
	OfficerID types.OfficerID
}

func (e *OfficerNotFoundError) Error() string {
	return fmt.Sprintf("officer not found in roster: %s", e.OfficerID)
}

// ScoreSeat scores one roster officer in one seat, normalizing readiness against the same
// candidate pool Execute would use. Locked officers are still scored; their breakdown says so.
func ScoreSeat(in Input, officer types.OfficerID, slot types.Slot) (*scoring.Breakdown, error) {
	scorer, err := scoring.NewScorer(in.Bundle, in.IntentKey)
	if err != nil {
		return nil, err
	}
	if !slot.IsValid() {
		return nil, &scoring.ConfigError{Message: fmt.Sprintf("unknown slot %q", slot)}
	}

	for _, o := range in.Officers {
		if o.ID == officer {
			maxPower := strongestPower(admissibleCandidates(in.Officers, in.Reservations))
			return scorer.Score(o, slot, maxPower, in.Reservations), nil
		}
	}
	return nil, &OfficerNotFoundError{OfficerID: officer}
}
