package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendRequest_Validate(t *testing.T) {
	valid := RecommendRequest{
		Officers:  []Officer{{ID: "kirk", Level: 10}},
		IntentKey: "grinding",
		Limit:     5,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RecommendRequest)
	}{
		{name: "missing intent", mutate: func(r *RecommendRequest) { r.IntentKey = "" }},
		{name: "no officers", mutate: func(r *RecommendRequest) { r.Officers = nil }},
		{name: "officer without id", mutate: func(r *RecommendRequest) { r.Officers = []Officer{{Name: "Kirk"}} }},
		{name: "negative level", mutate: func(r *RecommendRequest) { r.Officers = []Officer{{ID: "kirk", Level: -1}} }},
		{name: "limit too large", mutate: func(r *RecommendRequest) { r.Limit = MaxRecommendationLimit + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestScoreRequest_Validate(t *testing.T) {
	req := ScoreRequest{
		OfficerID: "kirk",
		Officers:  []Officer{{ID: "kirk"}},
		IntentKey: "grinding",
		Slot:      SlotCaptain,
	}
	assert.NoError(t, req.Validate())

	req.Slot = "engineering"
	assert.Error(t, req.Validate())
}

func TestSlot_IsValid(t *testing.T) {
	assert.True(t, SlotCaptain.IsValid())
	assert.True(t, SlotBridge2.IsValid())
	assert.False(t, Slot("below_deck").IsValid())
}

func TestRecommendationResult_FactorSum(t *testing.T) {
	r := RecommendationResult{Factors: []Factor{{Name: "a", Score: 1.5}, {Name: "b", Score: -0.5}}}
	assert.Equal(t, 1.0, r.FactorSum())
}
