package db

import (
	"time"

	"github.com/google/uuid"
)

// IntentRow is one row of the intents table
type IntentRow struct {
	Key            string
	Name           string
	Category       string
	TargetKind     string
	EngagementMode string
	TargetTags     []string
	ShipClass      string
}

// WeightRow is one row of the intent_weights table
type WeightRow struct {
	IntentKey string
	EffectKey string
	Weight    float64
}

// AbilityRow is one row of the officer_abilities table
type AbilityRow struct {
	ID        string
	OfficerID string
	Name      string
	Slot      string
	Inert     bool
}

// EffectRow is one row of the ability_effects table. A NULL magnitude means unknown.
type EffectRow struct {
	AbilityID   string
	Position    int
	EffectKey   string
	Magnitude   *float64
	Unit        string
	Stacking    string
	TargetKinds []string
	TargetTags  []string
	Conditions  []byte
}

// OfficerRow is one row of the officers table
type OfficerRow struct {
	ID           string
	Name         string
	SynergyGroup *string
	Level        int
	Rank         int
	Power        float64
	Faction      string
	Rarity       string
}

// ReservationRow is one row of the reservations table
type ReservationRow struct {
	OfficerID   string
	ReservedFor string
	Locked      bool
}

// RecommendationRun is a stored recommendation call
type RecommendationRun struct {
	ID        uuid.UUID `json:"id"`
	IntentKey string    `json:"intent_key"`
	CaptainID string    `json:"captain_id,omitempty"`
	Fallback  bool      `json:"fallback"`
	Evaluated int       `json:"evaluated"`
	Warnings  []string  `json:"warnings"`
	Results   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
