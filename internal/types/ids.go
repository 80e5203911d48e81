// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Identifier key spaces. Each mapping in the engine is keyed by exactly one of these so that
// an officer id can never be used where an effect key is expected, even though both are strings.
type (
	// OfficerID identifies an officer in the roster and in the effect bundle.
	OfficerID string
	// AbilityID identifies a single ability record.
	AbilityID string
	// EffectKey is the canonical identifier of a gameplay effect (e.g. damage_dealt).
	EffectKey string
	// IntentKey identifies a planning intent (e.g. grinding).
	IntentKey string
	// SynergyGroupID identifies an officer synergy group.
	SynergyGroupID string
	// ConditionKey identifies an activation condition.
	ConditionKey string
	// TargetKind is the kind of target an intent is evaluated against (hostile, player, ...).
	TargetKind string
	// TargetTag is a free-form tag on a target context (pve, swarm, ...).
	TargetTag string
)

// TargetKindAny matches every target kind when listed on an effect.
const TargetKindAny TargetKind = "any"
