package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/majel/internal/types"
)

// LoadEffectBundle reads the whole effect catalog and assembles it into a bundle.
func (db *DB) LoadEffectBundle(ctx context.Context) (*types.EffectBundle, error) {
	intents, err := db.listIntents(ctx)
	if err != nil {
		return nil, err
	}
	weights, err := db.listWeights(ctx)
	if err != nil {
		return nil, err
	}
	abilities, err := db.listAbilities(ctx)
	if err != nil {
		return nil, err
	}
	effects, err := db.listEffects(ctx)
	if err != nil {
		return nil, err
	}
	return AssembleEffectBundle(intents, weights, abilities, effects)
}

// LoadRoster returns every officer ordered by id.
func (db *DB) LoadRoster(ctx context.Context) ([]types.Officer, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, synergy_group, level, rank, power, faction, rarity
		 FROM officers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query officers: %w", err)
	}
	collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (OfficerRow, error) {
		var o OfficerRow
		err := row.Scan(&o.ID, &o.Name, &o.SynergyGroup, &o.Level, &o.Rank, &o.Power, &o.Faction, &o.Rarity)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan officers: %w", err)
	}
	return AssembleRoster(collected), nil
}

// LoadReservations returns every reservation keyed by officer.
func (db *DB) LoadReservations(ctx context.Context) (types.Reservations, error) {
	rows, err := db.pool.Query(ctx, `SELECT officer_id, reserved_for, locked FROM reservations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ReservationRow, error) {
		var r ReservationRow
		err := row.Scan(&r.OfficerID, &r.ReservedFor, &r.Locked)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservations: %w", err)
	}
	return AssembleReservations(collected), nil
}

// SetReservation creates or replaces the reservation of one officer
func (db *DB) SetReservation(ctx context.Context, officer types.OfficerID, res types.Reservation) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO reservations (officer_id, reserved_for, locked)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (officer_id) DO UPDATE SET reserved_for = $2, locked = $3`,
		string(officer), res.ReservedFor, res.Locked,
	)
	if err != nil {
		return fmt.Errorf("failed to set reservation: %w", err)
	}
	return nil
}

// ClearReservation removes the reservation of one officer, if any
func (db *DB) ClearReservation(ctx context.Context, officer types.OfficerID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM reservations WHERE officer_id = $1`, string(officer)); err != nil {
		return fmt.Errorf("failed to clear reservation: %w", err)
	}
	return nil
}

func (db *DB) listIntents(ctx context.Context) ([]IntentRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT key, name, category, target_kind, engagement_mode, target_tags, ship_class
		 FROM intents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query intents: %w", err)
	}
	intents, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (IntentRow, error) {
		var r IntentRow
		err := row.Scan(&r.Key, &r.Name, &r.Category, &r.TargetKind, &r.EngagementMode, &r.TargetTags, &r.ShipClass)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan intents: %w", err)
	}
	return intents, nil
}

func (db *DB) listWeights(ctx context.Context) ([]WeightRow, error) {
	rows, err := db.pool.Query(ctx, `SELECT intent_key, effect_key, weight FROM intent_weights`)
	if err != nil {
		return nil, fmt.Errorf("failed to query intent weights: %w", err)
	}
	weights, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WeightRow, error) {
		var r WeightRow
		err := row.Scan(&r.IntentKey, &r.EffectKey, &r.Weight)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan intent weights: %w", err)
	}
	return weights, nil
}

func (db *DB) listAbilities(ctx context.Context) ([]AbilityRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, officer_id, name, slot, inert FROM officer_abilities ORDER BY officer_id, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query abilities: %w", err)
	}
	abilities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (AbilityRow, error) {
		var r AbilityRow
		err := row.Scan(&r.ID, &r.OfficerID, &r.Name, &r.Slot, &r.Inert)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan abilities: %w", err)
	}
	return abilities, nil
}

func (db *DB) listEffects(ctx context.Context) ([]EffectRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT ability_id, position, effect_key, magnitude, unit, stacking, target_kinds, target_tags, conditions
		 FROM ability_effects ORDER BY ability_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query effects: %w", err)
	}
	effects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (EffectRow, error) {
		var r EffectRow
		err := row.Scan(&r.AbilityID, &r.Position, &r.EffectKey, &r.Magnitude, &r.Unit, &r.Stacking,
			&r.TargetKinds, &r.TargetTags, &r.Conditions)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan effects: %w", err)
	}
	return effects, nil
}

// AssembleEffectBundle resolves catalog rows into an effect bundle. Effects whose
// ability is missing are an error; abilities without effects are kept.
func AssembleEffectBundle(intents []IntentRow, weights []WeightRow, abilities []AbilityRow, effects []EffectRow) (*types.EffectBundle, error) {
	b := &types.EffectBundle{
		Intents:          make(map[types.IntentKey]types.IntentDefinition, len(intents)),
		OfficerAbilities: make(map[types.OfficerID][]types.OfficerAbility),
	}

	for _, r := range intents {
		key := types.IntentKey(r.Key)
		b.Intents[key] = types.IntentDefinition{
			Key:      key,
			Name:     r.Name,
			Category: types.IntentCategory(r.Category),
			DefaultContext: types.TargetContext{
				TargetKind:     types.TargetKind(r.TargetKind),
				EngagementMode: r.EngagementMode,
				TargetTags:     toTyped[types.TargetTag](r.TargetTags),
				ShipClass:      r.ShipClass,
			},
			Weights: make(map[types.EffectKey]float64),
		}
	}

	for _, w := range weights {
		key := types.IntentKey(w.IntentKey)
		def, ok := b.Intents[key]
		if !ok {
			return nil, fmt.Errorf("weight for effect %s references unknown intent %s", w.EffectKey, w.IntentKey)
		}
		def.Weights[types.EffectKey(w.EffectKey)] = w.Weight
	}

	byAbility := make(map[string][]EffectRow)
	for _, e := range effects {
		byAbility[e.AbilityID] = append(byAbility[e.AbilityID], e)
	}

	known := make(map[string]bool, len(abilities))
	for _, a := range abilities {
		known[a.ID] = true
		rows := byAbility[a.ID]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

		ability := types.OfficerAbility{
			ID:        types.AbilityID(a.ID),
			OfficerID: types.OfficerID(a.OfficerID),
			Name:      a.Name,
			Slot:      types.AbilitySlot(a.Slot),
			Inert:     a.Inert,
			Effects:   make([]types.AbilityEffect, 0, len(rows)),
		}
		for _, e := range rows {
			effect, err := assembleEffect(e)
			if err != nil {
				return nil, err
			}
			ability.Effects = append(ability.Effects, effect)
		}
		officer := types.OfficerID(a.OfficerID)
		b.OfficerAbilities[officer] = append(b.OfficerAbilities[officer], ability)
	}

	for id := range byAbility {
		if !known[id] {
			return nil, fmt.Errorf("effects reference unknown ability %s", id)
		}
	}
	return b, nil
}

func assembleEffect(e EffectRow) (types.AbilityEffect, error) {
	effect := types.AbilityEffect{
		Key:         types.EffectKey(e.EffectKey),
		Magnitude:   types.UnknownMagnitude(),
		Unit:        types.EffectUnit(e.Unit),
		Stacking:    types.StackingRule(e.Stacking),
		TargetKinds: toTyped[types.TargetKind](e.TargetKinds),
		TargetTags:  toTyped[types.TargetTag](e.TargetTags),
	}
	if e.Magnitude != nil {
		effect.Magnitude = types.KnownMagnitude(*e.Magnitude)
	}
	if len(e.Conditions) > 0 {
		if err := json.Unmarshal(e.Conditions, &effect.Conditions); err != nil {
			return types.AbilityEffect{}, fmt.Errorf("failed to unmarshal conditions of %s#%d: %w", e.AbilityID, e.Position, err)
		}
	}
	if len(effect.Conditions) == 0 {
		effect.Conditions = nil
	}
	return effect, nil
}

// AssembleRoster converts officer rows into roster officers.
func AssembleRoster(rows []OfficerRow) []types.Officer {
	officers := make([]types.Officer, 0, len(rows))
	for _, r := range rows {
		o := types.Officer{
			ID:      types.OfficerID(r.ID),
			Name:    r.Name,
			Level:   r.Level,
			Rank:    r.Rank,
			Power:   r.Power,
			Faction: r.Faction,
			Rarity:  r.Rarity,
		}
		if r.SynergyGroup != nil {
			o.SynergyGroup = types.SynergyGroupID(*r.SynergyGroup)
		}
		officers = append(officers, o)
	}
	return officers
}

// AssembleReservations converts reservation rows into a reservations map.
func AssembleReservations(rows []ReservationRow) types.Reservations {
	res := make(types.Reservations, len(rows))
	for _, r := range rows {
		res[types.OfficerID(r.OfficerID)] = types.Reservation{
			ReservedFor: r.ReservedFor,
			Locked:      r.Locked,
		}
	}
	return res
}

func toTyped[T ~string](values []string) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
