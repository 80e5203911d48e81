package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/majel/internal/crew"
	"github.com/jonathan/majel/internal/observability"
	"github.com/jonathan/majel/internal/types"
	"github.com/spf13/cobra"
)

type scoreOfficerOptions struct {
	root    *rootOptions
	catalog catalogFlags
	intent  string
	officer string
	slot    string
}

func newScoreOfficerCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOfficerOptions{root: root}

	cmd := &cobra.Command{
		Use:   "score-officer",
		Short: "Explain one officer's score in one bridge seat",
		Long:  "Scores a single roster officer for one seat under an intent and prints the per-effect breakdown as JSON.",
		RunE:  opts.run,
	}

	opts.catalog.register(cmd)
	cmd.Flags().StringVarP(&opts.intent, "intent", "i", "", "Planning intent key (required)")
	cmd.Flags().StringVar(&opts.officer, "officer", "", "Officer id (required)")
	cmd.Flags().StringVar(&opts.slot, "slot", string(types.SlotCaptain), "Seat: captain, bridge_1 or bridge_2")

	for _, name := range []string{"intent", "officer"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	return cmd
}

func (o *scoreOfficerOptions) run(cmd *cobra.Command, _ []string) error {
	slot := types.Slot(o.slot)
	if !slot.IsValid() {
		return fmt.Errorf("invalid --slot %q: must be captain, bridge_1 or bridge_2", o.slot)
	}

	cat, err := loadCatalog(cmd.Context(), o.catalog, o.root.logger)
	if err != nil {
		return err
	}
	defer cat.Close()

	breakdown, err := crew.ScoreSeat(crew.Input{
		Officers:     cat.roster,
		Reservations: cat.reservations,
		IntentKey:    types.IntentKey(o.intent),
		Bundle:       cat.bundle,
	}, types.OfficerID(o.officer), slot)
	if err != nil {
		return fmt.Errorf("failed to score officer: %w", err)
	}

	jsonOutput, err := json.MarshalIndent(map[string]any{
		"breakdown": breakdown,
		"total":     breakdown.Total(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))

	if o.root.verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintBreakdown(breakdown)
	}
	return nil
}
