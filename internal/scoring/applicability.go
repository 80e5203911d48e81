// Package scoring scores a single officer for a single bridge seat under one planning intent.
package scoring

import (
	"fmt"

	"github.com/jonathan/majel/internal/types"
)

// Condition keys whose truth can be read off the target context at planning time.
const (
	conditionEngagementMode types.ConditionKey = "engagement_mode"
	conditionTargetKind     types.ConditionKey = "target_kind"
	conditionTargetTag      types.ConditionKey = "target_tag"
	conditionShipClass      types.ConditionKey = "ship_class"
)

type conditionOutcome int

const (
	conditionUndetermined conditionOutcome = iota
	conditionHolds
	conditionFails
)

// applicability is the outcome of checking one effect against the intent context.
type applicability struct {
	applicable  bool
	conditional bool // at least one condition cannot be decided before battle
}

// contextTags is the tag view of a target context: its tags plus engagement mode and ship class.
func contextTags(ctx types.TargetContext) map[types.TargetTag]bool {
	tags := make(map[types.TargetTag]bool, len(ctx.TargetTags)+2)
	for _, t := range ctx.TargetTags {
		tags[t] = true
	}
	if ctx.EngagementMode != "" {
		tags[types.TargetTag(ctx.EngagementMode)] = true
	}
	if ctx.ShipClass != "" {
		tags[types.TargetTag(ctx.ShipClass)] = true
	}
	return tags
}

// kindsMatch requires the effect to name the context's target kind, or the wildcard.
// An effect with no target kinds applies nowhere.
func kindsMatch(effect types.AbilityEffect, ctx types.TargetContext) bool {
	for _, k := range effect.TargetKinds {
		if k == types.TargetKindAny || (ctx.TargetKind != "" && k == ctx.TargetKind) {
			return true
		}
	}
	return false
}

// tagsMatch passes untagged effects; tagged effects need one tag in common with the context.
func tagsMatch(effect types.AbilityEffect, tags map[types.TargetTag]bool) bool {
	if len(effect.TargetTags) == 0 {
		return true
	}
	for _, t := range effect.TargetTags {
		if tags[t] {
			return true
		}
	}
	return false
}

func paramString(c types.ActivationCondition, name string) (string, bool) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return "", false
	}
	s := fmt.Sprint(v)
	return s, s != ""
}

// resolveCondition decides a condition from the context when possible.
func resolveCondition(c types.ActivationCondition, ctx types.TargetContext, tags map[types.TargetTag]bool) conditionOutcome {
	var want string
	var ok bool
	switch c.Key {
	case conditionEngagementMode:
		if want, ok = paramString(c, "mode"); !ok || ctx.EngagementMode == "" {
			return conditionUndetermined
		}
		return holdsIf(want == ctx.EngagementMode)
	case conditionTargetKind:
		if want, ok = paramString(c, "kind"); !ok || ctx.TargetKind == "" {
			return conditionUndetermined
		}
		return holdsIf(types.TargetKind(want) == ctx.TargetKind)
	case conditionTargetTag:
		if want, ok = paramString(c, "tag"); !ok {
			return conditionUndetermined
		}
		return holdsIf(tags[types.TargetTag(want)])
	case conditionShipClass:
		if want, ok = paramString(c, "class"); !ok || ctx.ShipClass == "" {
			return conditionUndetermined
		}
		return holdsIf(want == ctx.ShipClass)
	default:
		return conditionUndetermined
	}
}

func holdsIf(b bool) conditionOutcome {
	if b {
		return conditionHolds
	}
	return conditionFails
}

// checkApplicability evaluates an effect against the context and its activation conditions.
func checkApplicability(effect types.AbilityEffect, ctx types.TargetContext, tags map[types.TargetTag]bool) applicability {
	if !kindsMatch(effect, ctx) || !tagsMatch(effect, tags) {
		return applicability{}
	}
	result := applicability{applicable: true}
	for _, c := range effect.Conditions {
		switch resolveCondition(c, ctx, tags) {
		case conditionFails:
			return applicability{}
		case conditionUndetermined:
			result.conditional = true
		}
	}
	return result
}
