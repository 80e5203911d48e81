// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AbilitySlot is the slot an ability occupies on its officer.
type AbilitySlot string

const (
	AbilitySlotCaptainManeuver AbilitySlot = "captain_maneuver"
	AbilitySlotOfficerAbility  AbilitySlot = "officer_ability"
	AbilitySlotBelowDeck       AbilitySlot = "below_deck_ability"
)

// EffectUnit describes how an effect magnitude is expressed.
type EffectUnit string

const (
	EffectUnitPercent EffectUnit = "percent"
	EffectUnitFlat    EffectUnit = "flat"
	EffectUnitRatio   EffectUnit = "ratio"
)

// StackingRule describes how repeated applications of an effect combine.
type StackingRule string

const (
	StackingAdditive       StackingRule = "additive"
	StackingMultiplicative StackingRule = "multiplicative"
	StackingUnique         StackingRule = "unique"
)

// ActivationCondition gates an effect behind some battle state.
type ActivationCondition struct {
	Key    ConditionKey   `json:"key" validate:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// AbilityEffect is one discrete numeric effect carried by an ability.
type AbilityEffect struct {
	Key         EffectKey             `json:"key" validate:"required"`
	Magnitude   Magnitude             `json:"magnitude"`
	Unit        EffectUnit            `json:"unit,omitempty"`
	Stacking    StackingRule          `json:"stacking,omitempty"`
	TargetKinds []TargetKind          `json:"target_kinds"`
	TargetTags  []TargetTag           `json:"target_tags,omitempty"`
	Conditions  []ActivationCondition `json:"conditions,omitempty" validate:"dive"`
}

// IsConditional reports whether the effect carries any activation condition.
func (e AbilityEffect) IsConditional() bool {
	return len(e.Conditions) > 0
}

// OfficerAbility is a single ability record of an officer.
type OfficerAbility struct {
	ID        AbilityID       `json:"id"`
	OfficerID OfficerID       `json:"officer_id"`
	Name      string          `json:"name,omitempty"`
	Slot      AbilitySlot     `json:"slot" validate:"required,oneof=captain_maneuver officer_ability below_deck_ability"`
	Effects   []AbilityEffect `json:"effects" validate:"dive"`
	// Inert abilities are recorded but have no effect in play.
	Inert bool `json:"inert,omitempty"`
}
