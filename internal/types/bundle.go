// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"sort"
)

// EffectBundle is the immutable snapshot of intent and ability data the engine scores against.
// It is assembled by an adapter (file or catalog store) and supplied whole per call.
type EffectBundle struct {
	Intents          map[IntentKey]IntentDefinition      `json:"intents"`
	IntentWeights    map[IntentKey]map[EffectKey]float64 `json:"intent_weights,omitempty"`
	OfficerAbilities map[OfficerID][]OfficerAbility      `json:"officer_abilities"`
}

// Intent looks up an intent definition. The returned definition always carries its key.
func (b *EffectBundle) Intent(key IntentKey) (IntentDefinition, bool) {
	if b == nil {
		return IntentDefinition{}, false
	}
	def, ok := b.Intents[key]
	if !ok {
		return IntentDefinition{}, false
	}
	if def.Key == "" {
		def.Key = key
	}
	return def, true
}

// Weight returns the configured weight of an effect key under an intent.
// The bundle-level weight table wins over weights embedded in the intent definition;
// an absent key weighs zero.
func (b *EffectBundle) Weight(intent IntentKey, effect EffectKey) float64 {
	if b == nil {
		return 0
	}
	if weights, ok := b.IntentWeights[intent]; ok {
		if w, found := weights[effect]; found {
			return w
		}
	}
	if def, ok := b.Intents[intent]; ok {
		return def.Weights[effect]
	}
	return 0
}

// WeightedKeys returns every effect key with a configured weight under the intent, sorted.
func (b *EffectBundle) WeightedKeys(intent IntentKey) []EffectKey {
	if b == nil {
		return nil
	}
	seen := make(map[EffectKey]bool)
	for k := range b.IntentWeights[intent] {
		seen[k] = true
	}
	for k := range b.Intents[intent].Weights {
		seen[k] = true
	}
	keys := make([]EffectKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Abilities returns the ability records of an officer.
func (b *EffectBundle) Abilities(officer OfficerID) []OfficerAbility {
	if b == nil {
		return nil
	}
	return b.OfficerAbilities[officer]
}

// IntentKeys lists the bundle's intents in sorted order.
func (b *EffectBundle) IntentKeys() []IntentKey {
	if b == nil {
		return nil
	}
	keys := make([]IntentKey, 0, len(b.Intents))
	for k := range b.Intents {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// MagnitudeRange is the span of known magnitudes recorded for one effect key.
type MagnitudeRange struct {
	Min float64
	Max float64
}

// KnownMagnitudeRanges returns, per effect key, the smallest and largest known magnitude
// recorded anywhere in the bundle. Zero and negative magnitudes count.
func (b *EffectBundle) KnownMagnitudeRanges() map[EffectKey]MagnitudeRange {
	result := make(map[EffectKey]MagnitudeRange)
	if b == nil {
		return result
	}
	for _, abilities := range b.OfficerAbilities {
		for _, ability := range abilities {
			for _, effect := range ability.Effects {
				v, ok := effect.Magnitude.Value()
				if !ok {
					continue
				}
				current, found := result[effect.Key]
				if !found {
					result[effect.Key] = MagnitudeRange{Min: v, Max: v}
					continue
				}
				current.Min = math.Min(current.Min, v)
				current.Max = math.Max(current.Max, v)
				result[effect.Key] = current
			}
		}
	}
	return result
}
