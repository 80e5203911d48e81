package crew

import "github.com/jonathan/majel/internal/types"

var hostileKinds = []types.TargetKind{"hostile"}

func grindingIntent() types.IntentDefinition {
	return types.IntentDefinition{
		Name: "Grinding",
		DefaultContext: types.TargetContext{
			TargetKind:     "hostile",
			EngagementMode: "attacking",
			TargetTags:     []types.TargetTag{"pve"},
		},
	}
}

func captainManeuver(id types.AbilityID, effects ...types.AbilityEffect) types.OfficerAbility {
	return types.OfficerAbility{ID: id, Name: string(id), Slot: types.AbilitySlotCaptainManeuver, Effects: effects}
}

func officerAbility(id types.AbilityID, effects ...types.AbilityEffect) types.OfficerAbility {
	return types.OfficerAbility{ID: id, Name: string(id), Slot: types.AbilitySlotOfficerAbility, Effects: effects}
}

func known(key types.EffectKey, v float64) types.AbilityEffect {
	return types.AbilityEffect{Key: key, Magnitude: types.KnownMagnitude(v), TargetKinds: hostileKinds}
}

func conditional(key types.EffectKey, v float64) types.AbilityEffect {
	e := known(key, v)
	e.Conditions = []types.ActivationCondition{{Key: "round_start"}}
	return e
}

// goldenBundle is the grinding scenario: three strong unconditional TOS officers versus two
// officers whose maneuvers only fire under battle conditions.
func goldenBundle() *types.EffectBundle {
	return &types.EffectBundle{
		Intents: map[types.IntentKey]types.IntentDefinition{
			"grinding": grindingIntent(),
			"mining": {
				DefaultContext: types.TargetContext{TargetKind: "mining_node"},
				Weights:        map[types.EffectKey]float64{"mining_rate": 1},
			},
		},
		IntentWeights: map[types.IntentKey]map[types.EffectKey]float64{
			"grinding": {
				"damage_dealt":  1.0,
				"weapon_damage": 1.0,
				"crit_chance":   0.8,
				"mitigation":    0.6,
			},
		},
		OfficerAbilities: map[types.OfficerID][]types.OfficerAbility{
			"kirk": {captainManeuver("kirk_cm", known("damage_dealt", 0.5))},
			"spock": {
				captainManeuver("spock_cm", known("crit_chance", 0.3)),
				officerAbility("spock_oa", known("officer_stat", 0.2)),
			},
			"mccoy": {
				captainManeuver("mccoy_cm", known("hull_health", 0.4)),
				officerAbility("mccoy_oa", conditional("mitigation", 0.3)),
			},
			"sulu":   {captainManeuver("sulu_cm", conditional("dodge", 0.3))},
			"ivanov": {captainManeuver("ivanov_cm", conditional("weapon_damage", 0.4))},
		},
	}
}

func goldenRoster() []types.Officer {
	return []types.Officer{
		{ID: "kirk", Name: "Kirk", SynergyGroup: "tos", Level: 40, Rank: 3, Power: 1000},
		{ID: "spock", Name: "Spock", SynergyGroup: "tos", Level: 40, Rank: 3, Power: 1000},
		{ID: "mccoy", Name: "McCoy", SynergyGroup: "tos", Level: 40, Rank: 3, Power: 1000},
		{ID: "sulu", Name: "Sulu", Level: 40, Rank: 3, Power: 1000},
		{ID: "ivanov", Name: "Ivanov", Level: 40, Rank: 3, Power: 1000},
	}
}
