// Package main provides the majel command line: crew recommendations, seat scoring, bundle
// validation and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/majel/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "majel",
		Short: "Effect-based crew recommendations for STFC officers",
		Long: `majel ranks three-officer bridge crews (captain plus two bridge officers) for a planning
intent, scoring each officer from the numeric effects of their abilities.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := observability.NewLogger(observability.LevelFor(opts.verbose))
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			// Sync fails on stderr for some terminals; nothing useful can be done about it.
			_ = opts.logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")

	cmd.AddCommand(
		newRecommendCmd(opts),
		newScoreOfficerCmd(opts),
		newValidateBundleCmd(opts),
		newIntentsCmd(opts),
		newServeCmd(opts),
		newDBCmd(opts),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
