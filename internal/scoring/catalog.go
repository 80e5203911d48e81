// Package scoring scores a single officer for a single bridge seat under one planning intent.
package scoring

import "github.com/jonathan/majel/internal/types"

// combatKeys are the captain-maneuver effect keys that make an officer a legitimate captain for
// combat intents.
var combatKeys = keySet(
	"damage_dealt", "weapon_damage", "crit_chance", "crit_damage",
	"mitigation", "armor", "shield_deflection", "dodge",
	"hull_health", "shield_health", "shield_mitigation",
	"armor_piercing", "shield_piercing", "accuracy",
	"isolytic_damage", "isolytic_defense", "apex_barrier", "apex_shred",
	"officer_attack", "officer_defense", "officer_health",
	"burning_chance", "hull_breach_chance",
)

// economyKeys play the same role for resource-gathering intents.
var economyKeys = keySet(
	"loot", "mining_rate", "protected_cargo", "cargo_capacity",
	"resource_reward", "warp_speed", "impulse_speed",
	"repair_cost", "repair_speed", "xp_reward",
)

// generalKeys are recognized effects that never make a captain viable on their own.
var generalKeys = keySet(
	"officer_stat", "ability_amount", "energy_damage", "kinetic_damage",
	"hull_repair", "shield_regeneration", "morale_chance", "cooldown",
)

var categoryKeys = map[types.IntentCategory]map[types.EffectKey]bool{
	types.IntentCategoryCombat:  combatKeys,
	types.IntentCategoryEconomy: economyKeys,
}

// intentCategories classifies well-known intents that do not declare a category themselves.
var intentCategories = map[types.IntentKey]types.IntentCategory{
	"grinding":       types.IntentCategoryCombat,
	"hostiles":       types.IntentCategoryCombat,
	"pvp":            types.IntentCategoryCombat,
	"armada":         types.IntentCategoryCombat,
	"base_defense":   types.IntentCategoryCombat,
	"base_cracking":  types.IntentCategoryCombat,
	"mission_combat": types.IntentCategoryCombat,
	"mining":         types.IntentCategoryEconomy,
	"mining_gas":     types.IntentCategoryEconomy,
	"mining_crystal": types.IntentCategoryEconomy,
	"mining_ore":     types.IntentCategoryEconomy,
	"looting":        types.IntentCategoryEconomy,
	"cargo_run":      types.IntentCategoryEconomy,
}

// miningTargetKind marks economy contexts when nothing else classifies the intent.
const miningTargetKind types.TargetKind = "mining_node"

func keySet(keys ...types.EffectKey) map[types.EffectKey]bool {
	set := make(map[types.EffectKey]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// CategoryFor resolves which captain allow-list applies to an intent.
// Order: the intent's own category, the well-known intent table, then the target kind.
func CategoryFor(intent types.IntentDefinition) types.IntentCategory {
	if _, ok := categoryKeys[intent.Category]; ok {
		return intent.Category
	}
	if cat, ok := intentCategories[intent.Key]; ok {
		return cat
	}
	if intent.DefaultContext.TargetKind == miningTargetKind {
		return types.IntentCategoryEconomy
	}
	return types.IntentCategoryCombat
}

// IsOnCategory reports whether an effect key counts toward captain viability for the category.
func IsOnCategory(category types.IntentCategory, key types.EffectKey) bool {
	return categoryKeys[category][key]
}

// IsRecognized reports whether the effect key belongs to the engine's effect catalog.
func IsRecognized(key types.EffectKey) bool {
	return combatKeys[key] || economyKeys[key] || generalKeys[key]
}
