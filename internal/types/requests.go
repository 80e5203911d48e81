// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// MaxRecommendationLimit caps how many trios a single request may ask for.
const MaxRecommendationLimit = 100

// RecommendRequest is the API request for a ranked crew list.
type RecommendRequest struct {
	Officers     []Officer    `json:"officers" validate:"required,min=1,dive"`
	Reservations Reservations `json:"reservations,omitempty"`
	IntentKey    IntentKey    `json:"intent_key" validate:"required"`
	CaptainID    OfficerID    `json:"captain_id,omitempty"`
	Limit        int          `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// ScoreRequest is the API request for a single officer's seat breakdown.
type ScoreRequest struct {
	OfficerID OfficerID `json:"officer_id" validate:"required"`
	Officers  []Officer `json:"officers" validate:"required,min=1,dive"`
	IntentKey IntentKey `json:"intent_key" validate:"required"`
	Slot      Slot      `json:"slot" validate:"required,oneof=captain bridge_1 bridge_2"`
}

// RecommendResponse wraps the ranked results of one recommendation run.
type RecommendResponse struct {
	RunID     string                 `json:"run_id"`
	IntentKey IntentKey              `json:"intent_key"`
	Results   []RecommendationResult `json:"results"`
	Warnings  []string               `json:"warnings,omitempty"`
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
