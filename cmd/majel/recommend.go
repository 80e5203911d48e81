package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/majel/internal/config"
	"github.com/jonathan/majel/internal/crew"
	"github.com/jonathan/majel/internal/observability"
	"github.com/jonathan/majel/internal/schemas"
	"github.com/jonathan/majel/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type recommendOptions struct {
	root       *rootOptions
	configPath string
	catalog    catalogFlags
	intent     string
	captain    string
	limit      int
	out        string
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{root: root}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank bridge crews for a planning intent",
		Long: `Scores every admissible captain and bridge pair from the roster against one intent and prints
the top trios as JSON, best first.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		RunE: opts.run,
	}

	// Config file flag (processed first)
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	opts.catalog.register(cmd)
	cmd.Flags().StringVarP(&opts.intent, "intent", "i", "", "Planning intent key, e.g. grinding")
	cmd.Flags().StringVarP(&opts.captain, "captain", "c", "", "Only consider trios led by this officer")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, fmt.Sprintf("Maximum number of trios (default %d)", crew.DefaultLimit))
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write results to this file instead of stdout")
	return cmd
}

// resolve merges the config file under the explicitly set flags.
func (o *recommendOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loadedCfg, err := config.LoadConfig(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("bundle") {
		cfg.Bundle = o.catalog.bundle
	}
	if flags.Changed("roster") {
		cfg.Roster = o.catalog.roster
	}
	if flags.Changed("reservations") {
		cfg.Reservations = o.catalog.reservations
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = o.catalog.databaseURL
	}
	if flags.Changed("intent") {
		cfg.Intent = o.intent
	}
	if flags.Changed("captain") {
		cfg.Captain = o.captain
	}
	if flags.Changed("limit") {
		cfg.Limit = o.limit
	}
	if flags.Changed("out") {
		cfg.Out = o.out
	}
	if o.root.verbose {
		cfg.Verbose = true
	}

	cfg = cfg.MergeWithDefaults(config.Config{Limit: crew.DefaultLimit})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Intent == "" {
		return cfg, fmt.Errorf("--intent is required")
	}
	return cfg, nil
}

func (o *recommendOptions) run(cmd *cobra.Command, _ []string) error {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return err
	}
	logger := o.root.logger

	cat, err := loadCatalog(cmd.Context(), catalogFlags{
		bundle:       cfg.Bundle,
		roster:       cfg.Roster,
		reservations: cfg.Reservations,
		databaseURL:  cfg.DatabaseURL,
	}, logger)
	if err != nil {
		return err
	}
	defer cat.Close()
	if len(cat.roster) == 0 {
		return fmt.Errorf("a roster is required: pass --roster or store one in the database")
	}

	run, err := crew.Execute(crew.Input{
		Officers:     cat.roster,
		Reservations: cat.reservations,
		IntentKey:    types.IntentKey(cfg.Intent),
		Bundle:       cat.bundle,
		CaptainID:    types.OfficerID(cfg.Captain),
		Limit:        cfg.Limit,
	})
	if err != nil {
		return fmt.Errorf("failed to recommend crews: %w", err)
	}
	for _, w := range run.Warnings {
		logger.Warn(w, zap.String("run_id", run.ID.String()))
	}
	logger.Info("recommendation complete",
		zap.String("run_id", run.ID.String()),
		zap.String("intent", cfg.Intent),
		zap.Int("evaluated", run.Evaluated),
		zap.Int("results", len(run.Results)),
	)

	if cat.database != nil {
		if err := cat.database.SaveRun(cmd.Context(), run, types.OfficerID(cfg.Captain)); err != nil {
			logger.Warn("failed to save recommendation run", zap.Error(err))
		}
	}

	jsonOutput, err := json.MarshalIndent(types.RecommendResponse{
		RunID:     run.ID.String(),
		IntentKey: run.IntentKey,
		Results:   run.Results,
		Warnings:  run.Warnings,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations to JSON: %w", err)
	}

	// Box output goes wherever the JSON does not
	var boxes io.Writer = cmd.ErrOrStderr()
	if cfg.Out == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	} else {
		if err := writeOutput(cfg.Out, jsonOutput); err != nil {
			return err
		}
		// Output validation is a safety check, not a requirement
		if err := schemas.ValidateFile(schemas.Recommendations, cfg.Out); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Output validation failed: %v\n", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d crews to %s\n", len(run.Results), cfg.Out)
		boxes = cmd.OutOrStdout()
	}

	if cfg.Verbose {
		observability.NewPrinter(boxes).PrintRecommendations(run.IntentKey, run.Results)
	}
	return nil
}

// writeOutput writes data to path, creating the parent directory.
func writeOutput(path string, data []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
