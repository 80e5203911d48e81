package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBundle() *EffectBundle {
	return &EffectBundle{
		Intents: map[IntentKey]IntentDefinition{
			"grinding": {Weights: map[EffectKey]float64{"damage_dealt": 1, "crit_chance": 0.5}},
			"mining":   {Key: "mining"},
		},
		IntentWeights: map[IntentKey]map[EffectKey]float64{
			"grinding": {"damage_dealt": 2},
		},
		OfficerAbilities: map[OfficerID][]OfficerAbility{
			"kirk": {{Effects: []AbilityEffect{
				{Key: "damage_dealt", Magnitude: KnownMagnitude(0.4)},
				{Key: "damage_dealt", Magnitude: UnknownMagnitude()},
			}}},
			"spock": {{Effects: []AbilityEffect{
				{Key: "damage_dealt", Magnitude: KnownMagnitude(0.2)},
				{Key: "crit_chance", Magnitude: KnownMagnitude(-0.1)},
			}}},
		},
	}
}

func TestEffectBundle_Intent(t *testing.T) {
	b := testBundle()
	def, ok := b.Intent("grinding")
	assert.True(t, ok)
	assert.Equal(t, IntentKey("grinding"), def.Key)

	_, ok = b.Intent("warp")
	assert.False(t, ok)

	var nilBundle *EffectBundle
	_, ok = nilBundle.Intent("grinding")
	assert.False(t, ok)
}

func TestEffectBundle_Weight(t *testing.T) {
	b := testBundle()
	assert.Equal(t, 2.0, b.Weight("grinding", "damage_dealt"), "bundle table wins")
	assert.Equal(t, 0.5, b.Weight("grinding", "crit_chance"), "intent definition fallback")
	assert.Equal(t, 0.0, b.Weight("grinding", "loot"))
	assert.Equal(t, 0.0, b.Weight("warp", "damage_dealt"))
	assert.Equal(t, []EffectKey{"crit_chance", "damage_dealt"}, b.WeightedKeys("grinding"))
}

func TestEffectBundle_KnownMagnitudeRanges(t *testing.T) {
	ranges := testBundle().KnownMagnitudeRanges()
	assert.Equal(t, MagnitudeRange{Min: 0.2, Max: 0.4}, ranges["damage_dealt"])
	assert.Equal(t, MagnitudeRange{Min: -0.1, Max: -0.1}, ranges["crit_chance"], "negative magnitudes are references too")
	_, ok := ranges["loot"]
	assert.False(t, ok)

	var nilBundle *EffectBundle
	assert.Empty(t, nilBundle.KnownMagnitudeRanges())
}

func TestEffectBundle_IntentKeys(t *testing.T) {
	assert.Equal(t, []IntentKey{"grinding", "mining"}, testBundle().IntentKeys())
}

func TestReservations(t *testing.T) {
	r := Reservations{
		"kirk":  {ReservedFor: "armada", Locked: true},
		"spock": {ReservedFor: "mining"},
		"sulu":  {},
	}
	assert.True(t, r.IsLocked("kirk"))
	assert.False(t, r.IsLocked("spock"))
	assert.False(t, r.IsLocked("nobody"))

	label, ok := r.SoftLabel("spock")
	assert.True(t, ok)
	assert.Equal(t, "mining", label)
	_, ok = r.SoftLabel("kirk")
	assert.False(t, ok)
	_, ok = r.SoftLabel("sulu")
	assert.False(t, ok)

	var nilReservations Reservations
	assert.False(t, nilReservations.IsLocked("kirk"))
}
