package main

import (
	"fmt"

	"github.com/jonathan/majel/internal/config"
	"github.com/jonathan/majel/internal/db"
	"github.com/jonathan/majel/internal/observability"
	"github.com/jonathan/majel/internal/server"
	"github.com/jonathan/majel/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type serveOptions struct {
	root    *rootOptions
	port    int
	migrate bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{root: root}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server that exposes the recommendation engine over JSON.

The catalog is read from PostgreSQL when DATABASE_URL is set, otherwise from MAJEL_BUNDLE_PATH,
MAJEL_ROSTER_PATH and MAJEL_RESERVATIONS_PATH. Rate limits come from RATE_LIMIT_* variables.`,
		RunE: opts.run,
	}
	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (overrides MAJEL_PORT)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "Apply database migrations before serving")
	return cmd
}

func (o *serveOptions) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = o.port
	}

	logger := o.root.logger
	if !o.root.verbose {
		if logger, err = observability.NewLogger(cfg.LogLevel); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	rateLimit, err := ratelimit.LoadConfig()
	if err != nil {
		return err
	}

	var (
		source server.CatalogSource
		runs   server.RunStore
	)
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if o.migrate {
			if err := database.Migrate(cmd.Context()); err != nil {
				return err
			}
			logger.Info("migrations applied")
		}
		source = server.NewDBSource(database)
		runs = database
		logger.Info("serving catalog from database")
	} else {
		fileSource, err := server.NewFileSource(server.FileSourceConfig{
			Bundle:       cfg.BundlePath,
			Roster:       cfg.RosterPath,
			Reservations: cfg.ReservationsPath,
		})
		if err != nil {
			return err
		}
		source = fileSource
		logger.Info("serving catalog from files", zap.String("bundle", cfg.BundlePath))
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		DefaultLimit:    cfg.DefaultLimit,
		CORSOrigins:     cfg.CORSOrigins,
		ShutdownTimeout: cfg.ShutdownTimeout,
		RateLimit:       rateLimit,
	}, source, runs, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
