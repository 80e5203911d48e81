package bundle

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/majel/internal/schemas"
	"github.com/jonathan/majel/internal/types"
)

// rosterColumns are the CSV headers LoadRoster understands. Only id is required.
var rosterColumns = []string{"id", "name", "synergy_group", "level", "rank", "power", "faction", "rarity"}

// LoadRoster loads the player's officers from a JSON array or a CSV file with
// a header row.
func LoadRoster(path string) ([]types.Officer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}
	officers, err := ParseRoster(content, DetectFormat(path))
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Path == "" {
			loadErr.Path = path
		}
		return nil, err
	}
	return officers, nil
}

// ParseRoster decodes roster content in the given format.
func ParseRoster(content []byte, format Format) ([]types.Officer, error) {
	switch format {
	case FormatCSV:
		return parseRosterCSV(content)
	case FormatYAML:
		data, err := toJSON(content)
		if err != nil {
			return nil, &LoadError{Message: "failed to decode roster", Cause: err}
		}
		return parseRosterJSON(data)
	default:
		return parseRosterJSON(content)
	}
}

func parseRosterJSON(data []byte) ([]types.Officer, error) {
	if err := schemas.Validate(schemas.Roster, data); err != nil {
		return nil, err
	}
	var officers []types.Officer
	if err := json.Unmarshal(data, &officers); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}
	return normalizeRoster(officers), nil
}

func parseRosterCSV(content []byte) ([]types.Officer, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &LoadError{Message: "roster CSV is empty"}
		}
		return nil, &LoadError{Message: "failed to read CSV header", Cause: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, &LoadError{Message: fmt.Sprintf("roster CSV is missing the id column (known columns: %s)", strings.Join(rosterColumns, ", "))}
	}

	var officers []types.Officer
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("failed to read CSV line %d", line), Cause: err}
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		id := field("id")
		if id == "" {
			continue
		}
		officer := types.Officer{
			ID:           types.OfficerID(id),
			Name:         field("name"),
			SynergyGroup: types.SynergyGroupID(field("synergy_group")),
			Faction:      field("faction"),
			Rarity:       field("rarity"),
		}
		if officer.Level, err = parseInt(field("level")); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("invalid level on CSV line %d", line), Cause: err}
		}
		if officer.Rank, err = parseInt(field("rank")); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("invalid rank on CSV line %d", line), Cause: err}
		}
		if officer.Power, err = parseFloat(field("power")); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("invalid power on CSV line %d", line), Cause: err}
		}
		officers = append(officers, officer)
	}
	return normalizeRoster(officers), nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("must not be negative: %d", v)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("must be a finite number: %s", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("must not be negative: %g", v)
	}
	return v, nil
}

// normalizeRoster trims identifiers. Duplicate ids are left for the engine
// to collapse.
func normalizeRoster(officers []types.Officer) []types.Officer {
	for i := range officers {
		officers[i].ID = types.OfficerID(strings.TrimSpace(string(officers[i].ID)))
		officers[i].SynergyGroup = types.SynergyGroupID(strings.TrimSpace(string(officers[i].SynergyGroup)))
	}
	return officers
}
