package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/majel/internal/bundle"
	"github.com/jonathan/majel/internal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type dbOptions struct {
	root        *rootOptions
	databaseURL string
}

func newDBCmd(root *rootOptions) *cobra.Command {
	opts := &dbOptions{root: root}

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the PostgreSQL catalog",
	}
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	cmd.AddCommand(opts.migrateCmd(), opts.importCmd())
	return cmd
}

func (o *dbOptions) connect(ctx context.Context) (*db.DB, error) {
	url := o.databaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("--database-url or DATABASE_URL environment variable is required")
	}
	return db.Connect(ctx, url)
}

func (o *dbOptions) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := o.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(cmd.Context()); err != nil {
				return err
			}
			files, _ := db.MigrationFiles()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migrations\n", len(files))
			return nil
		},
	}
}

func (o *dbOptions) importCmd() *cobra.Command {
	var bundlePath, rosterPath, reservationsPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an effect bundle, roster or reservations from files",
		Long:  "Replaces the stored catalog with the bundle file, and upserts roster officers and reservations.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bundlePath == "" && rosterPath == "" && reservationsPath == "" {
				return fmt.Errorf("at least one of --bundle, --roster or --reservations is required")
			}
			ctx := cmd.Context()
			logger := o.root.logger

			database, err := o.connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if bundlePath != "" {
				b, err := bundle.LoadEffectBundle(bundlePath)
				if err != nil {
					return err
				}
				if err := database.ImportEffectBundle(ctx, b); err != nil {
					return err
				}
				logger.Info("effect bundle imported",
					zap.Int("intents", len(b.Intents)),
					zap.Int("officers", len(b.OfficerAbilities)),
				)
			}
			if rosterPath != "" {
				officers, err := bundle.LoadRoster(rosterPath)
				if err != nil {
					return err
				}
				if err := database.ImportRoster(ctx, officers); err != nil {
					return err
				}
				logger.Info("roster imported", zap.Int("officers", len(officers)))
			}
			if reservationsPath != "" {
				reservations, err := bundle.LoadReservations(reservationsPath)
				if err != nil {
					return err
				}
				for id, res := range reservations {
					if err := database.SetReservation(ctx, id, res); err != nil {
						return err
					}
				}
				logger.Info("reservations imported", zap.Int("reservations", len(reservations)))
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Import complete")
			return nil
		},
	}
	cmd.Flags().StringVarP(&bundlePath, "bundle", "b", "", "Path to effect bundle file")
	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Path to roster file")
	cmd.Flags().StringVar(&reservationsPath, "reservations", "", "Path to reservations file")
	return cmd
}
