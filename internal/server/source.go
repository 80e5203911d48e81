package server

import (
	"context"
	"fmt"

	"github.com/jonathan/majel/internal/bundle"
	"github.com/jonathan/majel/internal/db"
	"github.com/jonathan/majel/internal/types"
)

// CatalogSource supplies the effect bundle and, optionally, a stored roster and reservations
// for requests that do not carry their own.
type CatalogSource interface {
	EffectBundle(ctx context.Context) (*types.EffectBundle, error)
	Roster(ctx context.Context) ([]types.Officer, error)
	Reservations(ctx context.Context) (types.Reservations, error)
}

// StaticSource serves a catalog held in memory. It is never mutated after construction.
type StaticSource struct {
	bundle       *types.EffectBundle
	roster       []types.Officer
	reservations types.Reservations
}

// NewStaticSource wraps an already loaded catalog.
func NewStaticSource(b *types.EffectBundle, roster []types.Officer, reservations types.Reservations) *StaticSource {
	return &StaticSource{bundle: b, roster: roster, reservations: reservations}
}

// FileSourceConfig names the files a file-backed catalog is read from. Only Bundle is required.
type FileSourceConfig struct {
	Bundle       string
	Roster       string
	Reservations string
}

// NewFileSource loads the catalog files once.
func NewFileSource(cfg FileSourceConfig) (*StaticSource, error) {
	b, err := bundle.LoadEffectBundle(cfg.Bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to load effect bundle: %w", err)
	}
	var roster []types.Officer
	if cfg.Roster != "" {
		if roster, err = bundle.LoadRoster(cfg.Roster); err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
	}
	var reservations types.Reservations
	if cfg.Reservations != "" {
		if reservations, err = bundle.LoadReservations(cfg.Reservations); err != nil {
			return nil, fmt.Errorf("failed to load reservations: %w", err)
		}
	}
	return NewStaticSource(b, roster, reservations), nil
}

func (s *StaticSource) EffectBundle(context.Context) (*types.EffectBundle, error) {
	return s.bundle, nil
}

func (s *StaticSource) Roster(context.Context) ([]types.Officer, error) {
	return s.roster, nil
}

func (s *StaticSource) Reservations(context.Context) (types.Reservations, error) {
	return s.reservations, nil
}

// DBSource reads the catalog from PostgreSQL on every request.
type DBSource struct {
	db *db.DB
}

// NewDBSource wraps an open database.
func NewDBSource(database *db.DB) *DBSource {
	return &DBSource{db: database}
}

func (s *DBSource) EffectBundle(ctx context.Context) (*types.EffectBundle, error) {
	return s.db.LoadEffectBundle(ctx)
}

func (s *DBSource) Roster(ctx context.Context) ([]types.Officer, error) {
	return s.db.LoadRoster(ctx)
}

func (s *DBSource) Reservations(ctx context.Context) (types.Reservations, error) {
	return s.db.LoadReservations(ctx)
}
