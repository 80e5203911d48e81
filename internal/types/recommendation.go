// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Slot is a bridge seat.
type Slot string

const (
	SlotCaptain Slot = "captain"
	SlotBridge1 Slot = "bridge_1"
	SlotBridge2 Slot = "bridge_2"
)

// IsValid reports whether the slot is one of the three bridge seats.
func (s Slot) IsValid() bool {
	switch s {
	case SlotCaptain, SlotBridge1, SlotBridge2:
		return true
	}
	return false
}

// Confidence classifies how much of a trio's score rests on certain data.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Factor is one named component of a recommendation's total score.
type Factor struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// RecommendationResult is one ranked crew.
type RecommendationResult struct {
	CaptainID         OfficerID  `json:"captain_id"`
	Bridge1ID         OfficerID  `json:"bridge_1_id"`
	Bridge2ID         OfficerID  `json:"bridge_2_id"`
	TotalScore        float64    `json:"total_score"`
	SynergyMultiplier float64    `json:"synergy_multiplier"`
	Factors           []Factor   `json:"factors"`
	Reasons           []string   `json:"reasons"`
	Confidence        Confidence `json:"confidence"`
}

// FactorSum adds up the factor breakdown. It equals TotalScore for every result the engine emits.
func (r RecommendationResult) FactorSum() float64 {
	sum := 0.0
	for _, f := range r.Factors {
		sum += f.Score
	}
	return sum
}
