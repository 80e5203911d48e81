// Package scoring scores a single officer for a single bridge seat under one planning intent.
package scoring

import (
	"math"

	"github.com/jonathan/majel/internal/types"
)

const (
	// effectScale turns unit-magnitude, unit-weight effects into whole points
	effectScale = 10.0
	// conditionalCredit is the share of credit an effect keeps while gated on battle state
	conditionalCredit = 0.5
	// unknownMagnitudeCeiling is the estimate for an unknown magnitude with no known reference
	unknownMagnitudeCeiling = 0.1
	// unknownMagnitudeFraction of the smallest known magnitude of the same key
	unknownMagnitudeFraction = 0.5
	// viableCaptainBonus rewards an on-category captain maneuver
	viableCaptainBonus = 8.0
	// nonViableCaptainPenalty applies when no applicable on-category maneuver exists
	nonViableCaptainPenalty = -4.0
)

// Options are the inputs of a single slot score.
type Options struct {
	IntentKey    types.IntentKey
	Slot         types.Slot
	Bundle       *types.EffectBundle
	Reservations types.Reservations
	MaxPower     float64
}

// Contribution is the scored share of one effect.
type Contribution struct {
	EffectKey   types.EffectKey   `json:"effect_key"`
	AbilityID   types.AbilityID   `json:"ability_id,omitempty"`
	AbilityName string            `json:"ability_name,omitempty"`
	AbilitySlot types.AbilitySlot `json:"ability_slot"`
	Weight      float64           `json:"weight"`
	Value       float64           `json:"value"`
	Known       bool              `json:"known"`
	Conditional bool              `json:"conditional"`
	Recognized  bool              `json:"recognized"`
}

// Certain reports whether the contribution rests on a recorded, unconditional, catalogued effect.
func (c Contribution) Certain() bool {
	return c.Known && !c.Conditional && c.Recognized
}

// Breakdown is the scored result of one officer in one seat.
type Breakdown struct {
	OfficerID     types.OfficerID `json:"officer_id"`
	Slot          types.Slot      `json:"slot"`
	EffectScore   float64         `json:"effect_score"`
	Readiness     float64         `json:"readiness"`
	CaptainBonus  float64         `json:"captain_bonus"`
	ViableCaptain bool            `json:"viable_captain"`
	Locked        bool            `json:"locked,omitempty"`
	ReservedFor   string          `json:"reserved_for,omitempty"`
	Contributions []Contribution  `json:"contributions"`

	// Retired free-text heuristics. Always zero; kept so older consumers see the same shape.
	GoalMatch    float64 `json:"goal_match"`
	ShipMatch    float64 `json:"ship_match"`
	CounterMatch float64 `json:"counter_match"`
}

// Total is the seat score before any crew-level synergy.
func (b *Breakdown) Total() float64 {
	return b.EffectScore + b.Readiness + b.CaptainBonus + b.GoalMatch + b.ShipMatch + b.CounterMatch
}

// Scorer scores officers against one intent of one bundle. It holds only values derived from
// its inputs at construction and is safe for concurrent use.
type Scorer struct {
	bundle   *types.EffectBundle
	intent   types.IntentDefinition
	category types.IntentCategory
	tags     map[types.TargetTag]bool
	known    map[types.EffectKey]types.MagnitudeRange
}

// NewScorer binds a scorer to an intent of the bundle.
func NewScorer(bundle *types.EffectBundle, intentKey types.IntentKey) (*Scorer, error) {
	if bundle == nil {
		return nil, errBundleRequired()
	}
	intent, ok := bundle.Intent(intentKey)
	if !ok {
		return nil, &UnknownIntentError{IntentKey: intentKey}
	}
	intent.Key = intentKey
	return &Scorer{
		bundle:   bundle,
		intent:   intent,
		category: CategoryFor(intent),
		tags:     contextTags(intent.DefaultContext),
		known:    bundle.KnownMagnitudeRanges(),
	}, nil
}

// Score scores one officer for one seat.
func Score(officer types.Officer, opts Options) (*Breakdown, error) {
	s, err := NewScorer(opts.Bundle, opts.IntentKey)
	if err != nil {
		return nil, err
	}
	return s.Score(officer, opts.Slot, opts.MaxPower, opts.Reservations), nil
}

// Intent returns the intent the scorer is bound to.
func (s *Scorer) Intent() types.IntentDefinition {
	return s.intent
}

// Category returns the captain allow-list category of the bound intent.
func (s *Scorer) Category() types.IntentCategory {
	return s.category
}

// Score scores one officer for one seat.
func (s *Scorer) Score(officer types.Officer, slot types.Slot, maxPower float64, reservations types.Reservations) *Breakdown {
	b := &Breakdown{
		OfficerID:     officer.ID,
		Slot:          slot,
		Readiness:     computeReadiness(officer, maxPower),
		Locked:        reservations.IsLocked(officer.ID),
		Contributions: []Contribution{},
	}
	if label, ok := reservations.SoftLabel(officer.ID); ok {
		b.ReservedFor = label
	}

	for _, ability := range s.bundle.Abilities(officer.ID) {
		if ability.Inert {
			continue
		}
		for _, effect := range ability.Effects {
			app := checkApplicability(effect, s.intent.DefaultContext, s.tags)
			if !app.applicable {
				continue
			}
			if ability.Slot == types.AbilitySlotCaptainManeuver && IsOnCategory(s.category, effect.Key) {
				b.ViableCaptain = true
			}
			if !countsToward(ability.Slot, slot) {
				continue
			}
			c := s.contribute(ability, effect, app)
			b.EffectScore += c.Value
			b.Contributions = append(b.Contributions, c)
		}
	}

	if slot == types.SlotCaptain {
		if b.ViableCaptain {
			b.CaptainBonus = viableCaptainBonus
		} else {
			b.CaptainBonus = nonViableCaptainPenalty
		}
	}
	return b
}

// countsToward reports whether an ability slot feeds the given bridge seat. Officer abilities
// stay active in every seat, captain maneuvers only from the captain's chair, below-deck
// abilities never on the bridge.
func countsToward(abilitySlot types.AbilitySlot, seat types.Slot) bool {
	switch abilitySlot {
	case types.AbilitySlotCaptainManeuver:
		return seat == types.SlotCaptain
	case types.AbilitySlotOfficerAbility:
		return seat.IsValid()
	default:
		return false
	}
}

func (s *Scorer) contribute(ability types.OfficerAbility, effect types.AbilityEffect, app applicability) Contribution {
	weight := s.bundle.Weight(s.intent.Key, effect.Key)
	base, known := effect.Magnitude.Value()
	if !known {
		base = s.unknownEstimate(effect.Key, weight)
	}
	credit := 1.0
	if app.conditional {
		credit = conditionalCredit
	}
	return Contribution{
		EffectKey:   effect.Key,
		AbilityID:   ability.ID,
		AbilityName: ability.Name,
		AbilitySlot: ability.Slot,
		Weight:      weight,
		Value:       effectScale * base * credit * weight,
		Known:       known,
		Conditional: app.conditional,
		Recognized:  IsRecognized(effect.Key),
	}
}

// unknownEstimate is a conservative magnitude for an effect whose value was never recorded.
// Scored under the given weight, it never beats a known magnitude of the same key.
func (s *Scorer) unknownEstimate(key types.EffectKey, weight float64) float64 {
	span, ok := s.known[key]
	switch {
	case !ok:
		return unknownMagnitudeCeiling
	case weight < 0:
		// a penalty: assume at least the worst recorded magnitude
		return math.Max(unknownMagnitudeCeiling, span.Max)
	case span.Min > 0:
		return math.Min(unknownMagnitudeCeiling, unknownMagnitudeFraction*span.Min)
	default:
		return span.Min
	}
}
