package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/majel/internal/types"
)

// ImportEffectBundle replaces the stored catalog with the contents of b in one transaction.
func (db *DB) ImportEffectBundle(ctx context.Context, b *types.EffectBundle) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM ability_effects`)
	batch.Queue(`DELETE FROM officer_abilities`)
	batch.Queue(`DELETE FROM intent_weights`)
	batch.Queue(`DELETE FROM intents`)

	for _, key := range b.IntentKeys() {
		def, _ := b.Intent(key)
		batch.Queue(
			`INSERT INTO intents (key, name, category, target_kind, engagement_mode, target_tags, ship_class)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			string(key), def.Name, string(def.Category), string(def.DefaultContext.TargetKind),
			def.DefaultContext.EngagementMode, toStrings(def.DefaultContext.TargetTags), def.DefaultContext.ShipClass,
		)
		for _, effect := range b.WeightedKeys(key) {
			batch.Queue(
				`INSERT INTO intent_weights (intent_key, effect_key, weight) VALUES ($1, $2, $3)`,
				string(key), string(effect), b.Weight(key, effect),
			)
		}
	}

	for officer, abilities := range b.OfficerAbilities {
		for _, ability := range abilities {
			batch.Queue(
				`INSERT INTO officer_abilities (id, officer_id, name, slot, inert) VALUES ($1, $2, $3, $4, $5)`,
				string(ability.ID), string(officer), ability.Name, string(ability.Slot), ability.Inert,
			)
			for i, effect := range ability.Effects {
				conditions := []byte("[]")
				if len(effect.Conditions) > 0 {
					var err error
					if conditions, err = json.Marshal(effect.Conditions); err != nil {
						return fmt.Errorf("failed to marshal conditions: %w", err)
					}
				}
				var magnitude *float64
				if v, ok := effect.Magnitude.Value(); ok {
					magnitude = &v
				}
				batch.Queue(
					`INSERT INTO ability_effects (ability_id, position, effect_key, magnitude, unit, stacking, target_kinds, target_tags, conditions)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
					string(ability.ID), i, string(effect.Key), magnitude, string(effect.Unit), string(effect.Stacking),
					toStrings(effect.TargetKinds), toStrings(effect.TargetTags), conditions,
				)
			}
		}
	}

	return db.sendBatch(ctx, batch, "effect bundle")
}

// ImportRoster upserts officers by id.
func (db *DB) ImportRoster(ctx context.Context, officers []types.Officer) error {
	batch := &pgx.Batch{}
	for _, o := range officers {
		var group *string
		if o.SynergyGroup != "" {
			g := string(o.SynergyGroup)
			group = &g
		}
		batch.Queue(
			`INSERT INTO officers (id, name, synergy_group, level, rank, power, faction, rarity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO UPDATE SET name = $2, synergy_group = $3, level = $4, rank = $5,
			     power = $6, faction = $7, rarity = $8`,
			string(o.ID), o.Name, group, o.Level, o.Rank, o.Power, o.Faction, o.Rarity,
		)
	}
	return db.sendBatch(ctx, batch, "roster")
}

func (db *DB) sendBatch(ctx context.Context, batch *pgx.Batch, what string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin %s import: %w", what, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to import %s: %w", what, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s import: %w", what, err)
	}
	return nil
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
