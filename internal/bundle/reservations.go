package bundle

import (
	"encoding/json"
	"os"

	"github.com/jonathan/majel/internal/schemas"
	"github.com/jonathan/majel/internal/types"
)

// LoadReservations loads reservations keyed by officer id from a JSON or YAML file.
func LoadReservations(path string) (types.Reservations, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	data := content
	if DetectFormat(path) == FormatYAML {
		if data, err = toJSON(content); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to decode reservations", Cause: err}
		}
	}

	if err := schemas.Validate(schemas.Reservations, data); err != nil {
		return nil, err
	}

	var reservations types.Reservations
	if err := json.Unmarshal(data, &reservations); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}
	return reservations, nil
}
