// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// IntentCategory groups intents that share a captain viability allow-list.
type IntentCategory string

const (
	IntentCategoryCombat  IntentCategory = "combat"
	IntentCategoryEconomy IntentCategory = "economy"
)

// TargetContext is what an intent is evaluated against.
type TargetContext struct {
	TargetKind     TargetKind  `json:"target_kind"`
	EngagementMode string      `json:"engagement_mode,omitempty"`
	TargetTags     []TargetTag `json:"target_tags,omitempty"`
	ShipClass      string      `json:"ship_class,omitempty"`
}

// IntentDefinition is a planning objective with its default target context and effect weights.
type IntentDefinition struct {
	Key            IntentKey             `json:"key"`
	Name           string                `json:"name,omitempty"`
	Category       IntentCategory        `json:"category,omitempty"`
	DefaultContext TargetContext         `json:"default_context"`
	Weights        map[EffectKey]float64 `json:"weights,omitempty"`
}
