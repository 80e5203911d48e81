package main

import (
	"fmt"
	"sort"

	"github.com/jonathan/majel/internal/bundle"
	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/types"
	"github.com/spf13/cobra"
)

type validateBundleOptions struct {
	root         *rootOptions
	bundle       string
	roster       string
	reservations string
	strict       bool
}

func newValidateBundleCmd(root *rootOptions) *cobra.Command {
	opts := &validateBundleOptions{root: root}

	cmd := &cobra.Command{
		Use:   "validate-bundle",
		Short: "Validate an effect bundle and optional roster and reservations files",
		Long: `Checks the files against their JSON Schemas, normalizes the bundle and reports catalog gaps:
intents without weights, abilities without effects, effect keys the engine does not know, and roster
officers with no recorded abilities.`,
		RunE: opts.run,
	}

	cmd.Flags().StringVarP(&opts.bundle, "bundle", "b", "", "Path to effect bundle file (required)")
	cmd.Flags().StringVarP(&opts.roster, "roster", "r", "", "Path to roster file")
	cmd.Flags().StringVar(&opts.reservations, "reservations", "", "Path to reservations file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat catalog gaps as failures")

	if err := cmd.MarkFlagRequired("bundle"); err != nil {
		panic(fmt.Sprintf("failed to mark bundle flag as required: %v", err))
	}
	return cmd
}

func (o *validateBundleOptions) run(cmd *cobra.Command, _ []string) error {
	b, err := bundle.LoadEffectBundle(o.bundle)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var roster []types.Officer
	if o.roster != "" {
		if roster, err = bundle.LoadRoster(o.roster); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	if o.reservations != "" {
		if _, err := bundle.LoadReservations(o.reservations); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	gaps := catalogGaps(b, roster)
	for _, gap := range gaps {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", gap)
	}
	if o.strict && len(gaps) > 0 {
		return fmt.Errorf("validation failed: %d catalog gaps", len(gaps))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d intents, %d officers with abilities\n",
		len(b.Intents), len(b.OfficerAbilities))
	return nil
}

// catalogGaps lists the places where a valid bundle would still score poorly, in a stable order.
func catalogGaps(b *types.EffectBundle, roster []types.Officer) []string {
	var gaps []string
	for _, key := range b.IntentKeys() {
		if len(b.WeightedKeys(key)) == 0 {
			gaps = append(gaps, fmt.Sprintf("intent %s has no effect weights", key))
		}
	}

	officers := make([]types.OfficerID, 0, len(b.OfficerAbilities))
	for id := range b.OfficerAbilities {
		officers = append(officers, id)
	}
	sort.Slice(officers, func(i, j int) bool { return officers[i] < officers[j] })

	unknown := map[types.EffectKey]bool{}
	for _, id := range officers {
		for _, ability := range b.OfficerAbilities[id] {
			if len(ability.Effects) == 0 && !ability.Inert {
				gaps = append(gaps, fmt.Sprintf("ability %s has no effects", ability.ID))
			}
			for _, effect := range ability.Effects {
				if !scoring.IsRecognized(effect.Key) && !unknown[effect.Key] {
					unknown[effect.Key] = true
					gaps = append(gaps, fmt.Sprintf("effect key %s is not in the engine catalog", effect.Key))
				}
			}
		}
	}

	for _, o := range roster {
		if len(b.Abilities(o.ID)) == 0 {
			gaps = append(gaps, fmt.Sprintf("roster officer %s has no recorded abilities", o.ID))
		}
	}
	return gaps
}
