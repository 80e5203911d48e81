// Package crew composes ranked three-officer bridge crews from slot scores.
package crew

import (
	"math"
	"runtime"
	"sort"

	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is used when the caller asks for a non-positive number of results.
const DefaultLimit = 10

// Factor names of a recommendation breakdown, in output order.
const (
	FactorCaptainEffect      = "captain.effect"
	FactorCaptainReadiness   = "captain.readiness"
	FactorCaptainBonus       = "captain.captain_bonus"
	FactorBridge1Effect      = "bridge_1.effect"
	FactorBridge1Readiness   = "bridge_1.readiness"
	FactorBridge2Effect      = "bridge_2.effect"
	FactorBridge2Readiness   = "bridge_2.readiness"
	FactorLegacyGoalMatch    = "legacy.goal_match"
	FactorLegacyShipMatch    = "legacy.ship_match"
	FactorLegacyCounterMatch = "legacy.counter_match"
	FactorSynergy            = "synergy"
)

// Input is everything one recommendation call needs.
type Input struct {
	Officers     []types.Officer
	Reservations types.Reservations
	IntentKey    types.IntentKey
	Bundle       *types.EffectBundle
	// CaptainID, when set, forces every trio to use that captain.
	CaptainID types.OfficerID
	Limit     int
}

// Recommend ranks candidate trios for the intent. It fails only when the bundle is missing or
// the intent is unknown to it.
func Recommend(in Input) ([]types.RecommendationResult, error) {
	run, err := Execute(in)
	if err != nil {
		return nil, err
	}
	return run.Results, nil
}

// Execute runs a recommendation and returns its full run context. Results are deterministic
// for identical input; Run.ID is fresh on every call, so compare Results rather than Runs.
func Execute(in Input) (*Run, error) {
	scorer, err := scoring.NewScorer(in.Bundle, in.IntentKey)
	if err != nil {
		return nil, err
	}
	run := newRun(in.IntentKey)

	candidates := admissibleCandidates(in.Officers, in.Reservations)
	if len(candidates) < 3 {
		return run, nil
	}
	maxPower := strongestPower(candidates)

	captainScores := make([]*scoring.Breakdown, len(candidates))
	bridge1Scores := make([]*scoring.Breakdown, len(candidates))
	bridge2Scores := make([]*scoring.Breakdown, len(candidates))
	for i, o := range candidates {
		captainScores[i] = scorer.Score(o, types.SlotCaptain, maxPower, in.Reservations)
		bridge1Scores[i] = scorer.Score(o, types.SlotBridge1, maxPower, in.Reservations)
		bridge2Scores[i] = scorer.Score(o, types.SlotBridge2, maxPower, in.Reservations)
	}

	pool := GateCaptains(candidates, captainScores, in.CaptainID)
	if pool.Fallback {
		run.Fallback = true
		run.warn(noViableCaptainWarning(in.IntentKey))
	}

	// Each captain's trios land in their own slot so the merge below is order independent.
	perCaptain := make([][]types.RecommendationResult, len(pool.Indexes))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, captainIdx := range pool.Indexes {
		g.Go(func() error {
			results := make([]types.RecommendationResult, 0, countPairs(len(candidates)))
			for p := range IndexPairs(len(candidates), captainIdx) {
				results = append(results, composeTrio(
					seat{officer: candidates[captainIdx], breakdown: captainScores[captainIdx]},
					seat{officer: candidates[p.I], breakdown: bridge1Scores[p.I]},
					seat{officer: candidates[p.J], breakdown: bridge2Scores[p.J]},
				))
			}
			perCaptain[k] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []types.RecommendationResult{}
	for _, results := range perCaptain {
		all = append(all, results...)
	}
	sortResults(all)
	run.Evaluated = len(all)

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(all) > limit {
		all = all[:limit]
	}
	if len(all) > 0 && len(run.Warnings) > 0 {
		all[0].Reasons = append(all[0].Reasons, run.Warnings...)
	}
	run.Results = all
	return run, nil
}

// admissibleCandidates drops hard-locked officers and duplicate ids, then orders by id.
func admissibleCandidates(officers []types.Officer, reservations types.Reservations) []types.Officer {
	seen := make(map[types.OfficerID]bool, len(officers))
	candidates := make([]types.Officer, 0, len(officers))
	for _, o := range officers {
		if o.ID == "" || seen[o.ID] || reservations.IsLocked(o.ID) {
			continue
		}
		seen[o.ID] = true
		candidates = append(candidates, o)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates
}

func strongestPower(officers []types.Officer) float64 {
	maxPower := 0.0
	for _, o := range officers {
		if o.Power > maxPower {
			maxPower = o.Power
		}
	}
	return maxPower
}

// composeTrio totals one crew. Synergy adds (multiplier-1) times the magnitude of the seat
// subtotal, so a shared group never lowers a crew even when the subtotal is negative. It is
// reported as its own factor so the factors always add up to the total.
func composeTrio(captain, bridge1, bridge2 seat) types.RecommendationResult {
	factors := []types.Factor{
		{Name: FactorCaptainEffect, Score: captain.breakdown.EffectScore},
		{Name: FactorCaptainReadiness, Score: captain.breakdown.Readiness},
		{Name: FactorCaptainBonus, Score: captain.breakdown.CaptainBonus},
		{Name: FactorBridge1Effect, Score: bridge1.breakdown.EffectScore},
		{Name: FactorBridge1Readiness, Score: bridge1.breakdown.Readiness},
		{Name: FactorBridge2Effect, Score: bridge2.breakdown.EffectScore},
		{Name: FactorBridge2Readiness, Score: bridge2.breakdown.Readiness},
		{Name: FactorLegacyGoalMatch, Score: 0},
		{Name: FactorLegacyShipMatch, Score: 0},
		{Name: FactorLegacyCounterMatch, Score: 0},
	}
	subtotal := 0.0
	for _, f := range factors {
		subtotal += f.Score
	}

	shared, group := sharedGroup(captain.officer, bridge1.officer, bridge2.officer)
	multiplier := synergyMultiplier(shared)
	total := subtotal + (multiplier-1)*math.Abs(subtotal)
	factors = append(factors, types.Factor{Name: FactorSynergy, Score: total - subtotal})

	seats := []seat{captain, bridge1, bridge2}
	var contributions []scoring.Contribution
	for _, s := range seats {
		contributions = append(contributions, s.breakdown.Contributions...)
	}

	return types.RecommendationResult{
		CaptainID:         captain.officer.ID,
		Bridge1ID:         bridge1.officer.ID,
		Bridge2ID:         bridge2.officer.ID,
		TotalScore:        total,
		SynergyMultiplier: multiplier,
		Factors:           factors,
		Reasons:           buildReasons(seats, shared, group, multiplier),
		Confidence:        classifyConfidence(contributions),
	}
}

// sortResults orders by total score, breaking ties on the seat ids.
func sortResults(results []types.RecommendationResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.CaptainID != b.CaptainID {
			return a.CaptainID < b.CaptainID
		}
		if a.Bridge1ID != b.Bridge1ID {
			return a.Bridge1ID < b.Bridge1ID
		}
		return a.Bridge2ID < b.Bridge2ID
	})
}
