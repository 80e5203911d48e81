package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitude_JSON(t *testing.T) {
	var effect AbilityEffect
	require.NoError(t, json.Unmarshal([]byte(`{"key":"damage_dealt","magnitude":0.25,"target_kinds":["hostile"]}`), &effect))
	v, ok := effect.Magnitude.Value()
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)

	var nullEffect AbilityEffect
	require.NoError(t, json.Unmarshal([]byte(`{"key":"damage_dealt","magnitude":null}`), &nullEffect))
	assert.False(t, nullEffect.Magnitude.IsKnown())

	var absent AbilityEffect
	require.NoError(t, json.Unmarshal([]byte(`{"key":"damage_dealt"}`), &absent))
	assert.False(t, absent.Magnitude.IsKnown())

	var zero AbilityEffect
	require.NoError(t, json.Unmarshal([]byte(`{"key":"damage_dealt","magnitude":0}`), &zero))
	assert.True(t, zero.Magnitude.IsKnown(), "a recorded zero is not unknown")

	var bad AbilityEffect
	assert.Error(t, json.Unmarshal([]byte(`{"magnitude":"lots"}`), &bad))
}

func TestMagnitude_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Magnitude `json:"a"`
		B Magnitude `json:"b"`
	}{A: KnownMagnitude(1.5), B: UnknownMagnitude()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null}`, string(out))
	assert.Equal(t, "unknown", UnknownMagnitude().String())
	assert.Equal(t, "1.5", KnownMagnitude(1.5).String())
}
