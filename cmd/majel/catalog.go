package main

import (
	"context"
	"fmt"

	"github.com/jonathan/majel/internal/db"
	"github.com/jonathan/majel/internal/server"
	"github.com/jonathan/majel/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catalogFlags select where the effect bundle, roster and reservations come from.
type catalogFlags struct {
	bundle       string
	roster       string
	reservations string
	databaseURL  string
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.bundle, "bundle", "b", "", "Path to effect bundle file (JSON or YAML)")
	cmd.Flags().StringVarP(&f.roster, "roster", "r", "", "Path to roster file (JSON, YAML or CSV)")
	cmd.Flags().StringVar(&f.reservations, "reservations", "", "Path to reservations file (JSON or YAML)")
	cmd.Flags().StringVar(&f.databaseURL, "database-url", "", "PostgreSQL connection URL (read the catalog from the database instead of files)")
}

// catalog is a fully loaded bundle, roster and reservation set.
type catalog struct {
	bundle       *types.EffectBundle
	roster       []types.Officer
	reservations types.Reservations
	database     *db.DB
}

// Close releases the database pool when the catalog came from PostgreSQL.
func (c *catalog) Close() {
	if c.database != nil {
		c.database.Close()
	}
}

// loadCatalog reads the catalog from the database when a URL is given, else from files.
func loadCatalog(ctx context.Context, f catalogFlags, logger *zap.Logger) (*catalog, error) {
	var (
		source   server.CatalogSource
		database *db.DB
	)
	switch {
	case f.databaseURL != "" && f.bundle != "":
		return nil, fmt.Errorf("--database-url and --bundle are mutually exclusive")
	case f.databaseURL != "":
		var err error
		database, err = db.Connect(ctx, f.databaseURL)
		if err != nil {
			return nil, err
		}
		source = server.NewDBSource(database)
	case f.bundle != "":
		fileSource, err := server.NewFileSource(server.FileSourceConfig{
			Bundle:       f.bundle,
			Roster:       f.roster,
			Reservations: f.reservations,
		})
		if err != nil {
			return nil, err
		}
		source = fileSource
	default:
		return nil, fmt.Errorf("either --bundle or --database-url must be provided")
	}

	c := &catalog{database: database}
	var err error
	if c.bundle, err = source.EffectBundle(ctx); err == nil {
		if c.roster, err = source.Roster(ctx); err == nil {
			c.reservations, err = source.Reservations(ctx)
		}
	}
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logger.Debug("catalog loaded",
		zap.Int("intents", len(c.bundle.Intents)),
		zap.Int("officers_with_abilities", len(c.bundle.OfficerAbilities)),
		zap.Int("roster", len(c.roster)),
		zap.Int("reservations", len(c.reservations)),
		zap.Bool("database", database != nil),
	)
	return c, nil
}
