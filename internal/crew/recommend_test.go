package crew

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendGolden(t *testing.T, mutate func(*Input)) []types.RecommendationResult {
	t.Helper()
	in := Input{
		Officers:  goldenRoster(),
		IntentKey: "grinding",
		Bundle:    goldenBundle(),
		Limit:     100,
	}
	if mutate != nil {
		mutate(&in)
	}
	results, err := Recommend(in)
	require.NoError(t, err)
	return results
}

func TestRecommend_GoldenScenario(t *testing.T) {
	results := recommendGolden(t, nil)
	require.NotEmpty(t, results)

	top := results[0]
	assert.Equal(t, types.OfficerID("kirk"), top.CaptainID)
	assert.ElementsMatch(t, []types.OfficerID{"mccoy", "spock"}, []types.OfficerID{top.Bridge1ID, top.Bridge2ID})

	for _, r := range results {
		if r.CaptainID == "sulu" {
			assert.Greater(t, top.TotalScore, r.TotalScore, "Kirk/Spock/McCoy should outrank %s/%s/%s", r.CaptainID, r.Bridge1ID, r.Bridge2ID)
		}
	}

	kirk, err := scoring.Score(goldenRoster()[0], scoring.Options{IntentKey: "grinding", Slot: types.SlotCaptain, Bundle: goldenBundle(), MaxPower: 1000})
	require.NoError(t, err)
	sulu, err := scoring.Score(goldenRoster()[3], scoring.Options{IntentKey: "grinding", Slot: types.SlotCaptain, Bundle: goldenBundle(), MaxPower: 1000})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, kirk.EffectScore, 2*sulu.EffectScore)
	assert.Greater(t, kirk.EffectScore, 0.0)
}

func TestRecommend_NoOfficerRepeatsAndOrdering(t *testing.T) {
	results := recommendGolden(t, nil)
	// 5 viable captains x C(4,2) bridge pairs
	require.Len(t, results, 30)

	for i, r := range results {
		assert.NotEqual(t, r.CaptainID, r.Bridge1ID)
		assert.NotEqual(t, r.CaptainID, r.Bridge2ID)
		assert.Less(t, r.Bridge1ID, r.Bridge2ID)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].TotalScore, r.TotalScore)
		}
	}
}

func TestRecommend_FactorsMatchTotal(t *testing.T) {
	for _, r := range recommendGolden(t, nil) {
		assert.InDelta(t, r.TotalScore, r.FactorSum(), 1e-9)
		assert.GreaterOrEqual(t, r.SynergyMultiplier, 1.0)
		names := make([]string, 0, len(r.Factors))
		for _, f := range r.Factors {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{
			FactorCaptainEffect, FactorCaptainReadiness, FactorCaptainBonus,
			FactorBridge1Effect, FactorBridge1Readiness,
			FactorBridge2Effect, FactorBridge2Readiness,
			FactorLegacyGoalMatch, FactorLegacyShipMatch, FactorLegacyCounterMatch,
			FactorSynergy,
		}, names)
	}
}

func TestRecommend_Pure(t *testing.T) {
	first := recommendGolden(t, nil)
	for i := 0; i < 10; i++ {
		again := recommendGolden(t, nil)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("recommendation changed between identical calls (-first +again):\n%s", diff)
		}
	}
}

func TestExecute_ResultsStableAcrossRuns(t *testing.T) {
	in := Input{Officers: goldenRoster(), IntentKey: "grinding", Bundle: goldenBundle()}
	first, err := Execute(in)
	require.NoError(t, err)
	second, err := Execute(in)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "each run gets its own id")
	if diff := cmp.Diff(first.Results, second.Results); diff != "" {
		t.Fatalf("results changed between identical runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.Evaluated, second.Evaluated)
}

func TestRecommend_ConcurrentCallers(t *testing.T) {
	in := Input{Officers: goldenRoster(), IntentKey: "grinding", Bundle: goldenBundle()}
	want, err := Recommend(in)
	require.NoError(t, err)

	const callers = 8
	got := make([][]types.RecommendationResult, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = Recommend(in)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Fatalf("caller %d saw a different ranking (-want +got):\n%s", i, diff)
		}
	}
}

func TestRecommend_Limit(t *testing.T) {
	assert.Len(t, recommendGolden(t, func(in *Input) { in.Limit = 3 }), 3)
	assert.Len(t, recommendGolden(t, func(in *Input) { in.Limit = 0 }), DefaultLimit)
}

func TestRecommend_HardLockExcluded(t *testing.T) {
	results := recommendGolden(t, func(in *Input) {
		in.Reservations = types.Reservations{"kirk": {ReservedFor: "armada", Locked: true}}
	})
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.NotContains(t, []types.OfficerID{r.CaptainID, r.Bridge1ID, r.Bridge2ID}, types.OfficerID("kirk"))
	}
}

func TestRecommend_SoftReservationStaysEligible(t *testing.T) {
	results := recommendGolden(t, func(in *Input) {
		in.Reservations = types.Reservations{"kirk": {ReservedFor: "armada"}}
	})
	require.NotEmpty(t, results)
	assert.Equal(t, types.OfficerID("kirk"), results[0].CaptainID)
	assert.Contains(t, results[0].Reasons, "Kirk is soft-reserved for armada")
}

func TestRecommend_PreferredCaptain(t *testing.T) {
	bundle := goldenBundle()
	// Chekov has nothing a grinding captain needs.
	bundle.OfficerAbilities["chekov"] = []types.OfficerAbility{captainManeuver("chekov_cm", known("loot", 5))}
	roster := append(goldenRoster(), types.Officer{ID: "chekov", Name: "Chekov", Level: 10})

	results, err := Recommend(Input{Officers: roster, IntentKey: "grinding", Bundle: bundle, CaptainID: "chekov", Limit: 100})
	require.NoError(t, err)
	require.Len(t, results, 10)
	for _, r := range results {
		assert.Equal(t, types.OfficerID("chekov"), r.CaptainID)
	}

	t.Run("locked preferred captain yields nothing", func(t *testing.T) {
		results, err := Recommend(Input{
			Officers:     roster,
			IntentKey:    "grinding",
			Bundle:       bundle,
			CaptainID:    "chekov",
			Reservations: types.Reservations{"chekov": {Locked: true}},
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestRecommend_ViableCaptainsOnly(t *testing.T) {
	bundle := goldenBundle()
	bundle.OfficerAbilities["chekov"] = []types.OfficerAbility{captainManeuver("chekov_cm", known("loot", 5))}
	roster := append(goldenRoster(), types.Officer{ID: "chekov", Name: "Chekov", Power: 5000, Rank: 5})

	results, err := Recommend(Input{Officers: roster, IntentKey: "grinding", Bundle: bundle, Limit: 1000})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.NotEqual(t, types.OfficerID("chekov"), r.CaptainID)
	}
}

func TestRecommend_FallbackWarningOncePerRun(t *testing.T) {
	run, err := Execute(Input{Officers: goldenRoster(), IntentKey: "mining", Bundle: goldenBundle(), Limit: 100})
	require.NoError(t, err)
	require.True(t, run.Fallback)
	require.Len(t, run.Results, 30)
	require.Len(t, run.Warnings, 1)

	count := 0
	for _, r := range run.Results {
		for _, reason := range r.Reasons {
			if strings.HasPrefix(reason, "no viable captains found") {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, run.Results[0].Reasons, run.Warnings[0])
}

func TestRecommend_NoFallbackWarningWhenViable(t *testing.T) {
	run, err := Execute(Input{Officers: goldenRoster(), IntentKey: "grinding", Bundle: goldenBundle()})
	require.NoError(t, err)
	assert.False(t, run.Fallback)
	assert.Empty(t, run.Warnings)
	assert.Equal(t, 30, run.Evaluated)
}

func TestRecommend_SynergyOrdering(t *testing.T) {
	bundle := goldenBundle()
	full := []types.Officer{
		{ID: "kirk", SynergyGroup: "tos", Power: 10},
		{ID: "spock", SynergyGroup: "tos", Power: 10},
		{ID: "mccoy", SynergyGroup: "tos", Power: 10},
	}
	partial := []types.Officer{
		{ID: "kirk", SynergyGroup: "tos", Power: 10},
		{ID: "spock", SynergyGroup: "tos", Power: 10},
		{ID: "mccoy", SynergyGroup: "tng", Power: 10},
	}

	fullResults, err := Recommend(Input{Officers: full, IntentKey: "grinding", Bundle: bundle, CaptainID: "kirk"})
	require.NoError(t, err)
	partialResults, err := Recommend(Input{Officers: partial, IntentKey: "grinding", Bundle: bundle, CaptainID: "kirk"})
	require.NoError(t, err)
	require.Len(t, fullResults, 1)
	require.Len(t, partialResults, 1)

	assert.Greater(t, fullResults[0].TotalScore, partialResults[0].TotalScore)
	assert.Equal(t, synergyFull, fullResults[0].SynergyMultiplier)
	assert.Equal(t, synergyPair, partialResults[0].SynergyMultiplier)
}

func TestRecommend_SynergyNeverLowersNegativeCrew(t *testing.T) {
	officers := []types.Officer{
		{ID: "a", SynergyGroup: "g"},
		{ID: "b", SynergyGroup: "g"},
		{ID: "c", SynergyGroup: "g"},
		{ID: "d", SynergyGroup: "h"},
	}
	results, err := Recommend(Input{Officers: officers, IntentKey: "grinding", Bundle: goldenBundle(), CaptainID: "a"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	top := results[0]
	assert.Equal(t, [3]types.OfficerID{"a", "b", "c"}, [3]types.OfficerID{top.CaptainID, top.Bridge1ID, top.Bridge2ID})
	assert.Equal(t, synergyFull, top.SynergyMultiplier)
	assert.InDelta(t, -3.0, top.TotalScore, 1e-9)

	for i, r := range results {
		subtotal := r.FactorSum() - r.Factors[len(r.Factors)-1].Score
		require.Less(t, subtotal, 0.0)
		assert.InDelta(t, r.TotalScore, r.FactorSum(), 1e-9)
		if r.SynergyMultiplier > 1 {
			assert.Greater(t, r.TotalScore, subtotal)
		}
		if i > 0 {
			assert.Greater(t, top.TotalScore, r.TotalScore)
			assert.InDelta(t, -3.6, r.TotalScore, 1e-9)
		}
	}
}

func TestRecommend_Confidence(t *testing.T) {
	results := recommendGolden(t, nil)
	byTrio := make(map[[3]types.OfficerID]types.Confidence)
	for _, r := range results {
		byTrio[[3]types.OfficerID{r.CaptainID, r.Bridge1ID, r.Bridge2ID}] = r.Confidence
	}
	assert.Equal(t, types.ConfidenceHigh, byTrio[[3]types.OfficerID{"kirk", "mccoy", "spock"}])
	assert.Equal(t, types.ConfidenceLow, byTrio[[3]types.OfficerID{"ivanov", "mccoy", "sulu"}])
}

func TestRecommend_ReasonsCiteEffects(t *testing.T) {
	results := recommendGolden(t, nil)
	top := results[0]
	require.NotEmpty(t, top.Reasons)
	assert.Equal(t, "damage_dealt +5.0 from Kirk (captain, captain maneuver)", top.Reasons[0])
	assert.Contains(t, top.Reasons, "mitigation +0.9 from McCoy (bridge_1, officer ability, conditional)")

	retired := []string{"goal_match", "ship_match", "counter_match", "goal match", "ship match", "counter match"}
	for _, r := range results {
		for _, reason := range r.Reasons {
			for _, label := range retired {
				assert.NotContains(t, reason, label)
			}
		}
	}
}

func TestRecommend_TooFewCandidates(t *testing.T) {
	results, err := Recommend(Input{Officers: goldenRoster()[:2], IntentKey: "grinding", Bundle: goldenBundle()})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommend_DuplicateOfficersCollapsed(t *testing.T) {
	roster := append(goldenRoster(), goldenRoster()[0])
	results, err := Recommend(Input{Officers: roster, IntentKey: "grinding", Bundle: goldenBundle(), Limit: 100})
	require.NoError(t, err)
	assert.Len(t, results, 30)
}

func TestRecommend_Errors(t *testing.T) {
	_, err := Recommend(Input{Officers: goldenRoster(), IntentKey: "grinding"})
	var cfgErr *scoring.ConfigError
	require.True(t, errors.As(err, &cfgErr))

	_, err = Recommend(Input{Officers: goldenRoster(), IntentKey: "warp", Bundle: goldenBundle()})
	var intentErr *scoring.UnknownIntentError
	require.True(t, errors.As(err, &intentErr))
}
