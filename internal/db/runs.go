package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/majel/internal/crew"
	"github.com/jonathan/majel/internal/types"
)

// SaveRun stores the outcome of a recommendation call
func (db *DB) SaveRun(ctx context.Context, run *crew.Run, captain types.OfficerID) error {
	warnings := run.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("failed to marshal warnings: %w", err)
	}
	resultsJSON, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO recommendation_runs (id, intent_key, captain_id, fallback, evaluated, warnings, results)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, string(run.IntentKey), string(captain), run.Fallback, run.Evaluated, warningsJSON, resultsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun retrieves a stored run by id. Returns nil, nil if not found.
func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (*RecommendationRun, error) {
	var run RecommendationRun
	var warnings []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, intent_key, captain_id, fallback, evaluated, warnings, results, created_at
		 FROM recommendation_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.IntentKey, &run.CaptainID, &run.Fallback, &run.Evaluated, &warnings, &run.Results, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if err := json.Unmarshal(warnings, &run.Warnings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal warnings: %w", err)
	}
	return &run, nil
}

// DecodeResults returns the ranked trios stored with a run
func (r *RecommendationRun) DecodeResults() ([]types.RecommendationResult, error) {
	var results []types.RecommendationResult
	if err := json.Unmarshal(r.Results, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	return results, nil
}
