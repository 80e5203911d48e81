package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/majel/internal/observability"
	"github.com/jonathan/majel/internal/scoring"
	"github.com/spf13/cobra"
)

type intentsOptions struct {
	root    *rootOptions
	catalog catalogFlags
	asJSON  bool
}

func newIntentsCmd(root *rootOptions) *cobra.Command {
	opts := &intentsOptions{root: root}

	cmd := &cobra.Command{
		Use:   "intents",
		Short: "List the planning intents of an effect bundle",
		RunE:  opts.run,
	}
	opts.catalog.register(cmd)
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print intents as JSON")
	return cmd
}

type intentListing struct {
	Key      string   `json:"key"`
	Name     string   `json:"name,omitempty"`
	Category string   `json:"category"`
	Target   string   `json:"target_kind"`
	Weighted []string `json:"weighted_keys"`
}

func (o *intentsOptions) run(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog(cmd.Context(), o.catalog, o.root.logger)
	if err != nil {
		return err
	}
	defer cat.Close()

	if !o.asJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintIntents(cat.bundle)
		return nil
	}

	listing := make([]intentListing, 0, len(cat.bundle.Intents))
	for _, key := range cat.bundle.IntentKeys() {
		def, _ := cat.bundle.Intent(key)
		entry := intentListing{
			Key:      string(key),
			Name:     def.Name,
			Category: string(scoring.CategoryFor(def)),
			Target:   string(def.DefaultContext.TargetKind),
			Weighted: []string{},
		}
		for _, k := range cat.bundle.WeightedKeys(key) {
			entry.Weighted = append(entry.Weighted, string(k))
		}
		listing = append(listing, entry)
	}

	jsonOutput, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal intents to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	return nil
}
