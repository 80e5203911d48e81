package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/majel/internal/schemas"
	"github.com/jonathan/majel/internal/types"
)

// LoadEffectBundle loads an effect bundle from a JSON or YAML file, validates
// it against the embedded schema and normalizes it.
func LoadEffectBundle(path string) (*types.EffectBundle, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	format := DetectFormat(path)
	if format == FormatCSV {
		return nil, &LoadError{Path: path, Message: "effect bundles cannot be read from CSV"}
	}
	b, err := ParseEffectBundle(content, format)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Path == "" {
			loadErr.Path = path
		}
		return nil, err
	}
	return b, nil
}

// ParseEffectBundle decodes bundle content in the given format.
func ParseEffectBundle(content []byte, format Format) (*types.EffectBundle, error) {
	data := content
	if format == FormatYAML {
		converted, err := toJSON(content)
		if err != nil {
			return nil, &LoadError{Message: "failed to decode bundle", Cause: err}
		}
		data = converted
	}

	if err := schemas.Validate(schemas.EffectBundle, data); err != nil {
		return nil, err
	}

	var b types.EffectBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	if err := NormalizeEffectBundle(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// NormalizeEffectBundle fills identifiers the file left implicit and drops
// empty and duplicate target kinds and tags.
func NormalizeEffectBundle(b *types.EffectBundle) error {
	for key, def := range b.Intents {
		if def.Key == "" {
			def.Key = key
		} else if def.Key != key {
			return &NormalizationError{
				Message: fmt.Sprintf("intent '%s' declares mismatched key '%s'", key, def.Key),
			}
		}
		b.Intents[key] = def
	}

	for officer, abilities := range b.OfficerAbilities {
		seen := make(map[types.AbilityID]bool, len(abilities))
		for i := range abilities {
			ability := &abilities[i]
			if ability.OfficerID == "" {
				ability.OfficerID = officer
			} else if ability.OfficerID != officer {
				return &NormalizationError{
					Message: fmt.Sprintf("ability '%s' listed under '%s' belongs to '%s'", ability.ID, officer, ability.OfficerID),
				}
			}
			if ability.ID == "" {
				ability.ID = types.AbilityID(fmt.Sprintf("%s.%s.%d", officer, ability.Slot, i))
			}
			if seen[ability.ID] {
				return &NormalizationError{
					Message: fmt.Sprintf("duplicate ability id '%s' for officer '%s'", ability.ID, officer),
				}
			}
			seen[ability.ID] = true

			for j := range ability.Effects {
				effect := &ability.Effects[j]
				effect.TargetKinds = dedupe(effect.TargetKinds)
				effect.TargetTags = dedupe(effect.TargetTags)
			}
		}
		b.OfficerAbilities[officer] = abilities
	}
	return nil
}

func dedupe[T ~string](values []T) []T {
	if len(values) == 0 {
		return values
	}
	out := make([]T, 0, len(values))
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		v = T(strings.TrimSpace(string(v)))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
