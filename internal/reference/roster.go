// Package reference loads the fixed candidate rosters that appear verbatim on every ballot.
package reference

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/ballot-parser/internal/schemas"
	"github.com/jonathan/ballot-parser/internal/types"
)

// Roster is an ordered, read-only list of candidates for one fixed position.
type Roster struct {
	candidates []types.Candidate
}

// Rosters holds both fixed rosters loaded once per run.
type Rosters struct {
	Senators  Roster
	PartyList Roster
}

// NewRoster builds a Roster from already-decoded candidates. Entries must be valid and
// listed in strictly ascending ballot-number order.
func NewRoster(candidates []types.Candidate) (Roster, error) {
	seen := make(map[int]bool, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if err := c.Validate(); err != nil {
			return Roster{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if seen[c.Number] {
			return Roster{}, fmt.Errorf("entry %d: duplicate number %d", i+1, c.Number)
		}
		seen[c.Number] = true
		if i > 0 && c.Number < candidates[i-1].Number {
			return Roster{}, fmt.Errorf("entry %d: number %d follows %d, roster must be in ascending order",
				i+1, c.Number, candidates[i-1].Number)
		}
	}
	copied := make([]types.Candidate, len(candidates))
	copy(copied, candidates)
	return Roster{candidates: copied}, nil
}

// Candidates returns a copy of the roster in ballot order.
func (r Roster) Candidates() []types.Candidate {
	out := make([]types.Candidate, len(r.candidates))
	copy(out, r.candidates)
	return out
}

// Len returns the number of entries in the roster.
func (r Roster) Len() int {
	return len(r.candidates)
}

// LoadRoster loads a roster from a JSON or YAML file. JSON rosters are also checked
// against the embedded roster schema.
func LoadRoster(path string) (Roster, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, &LoadError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	var candidates []types.Candidate
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &candidates); err != nil {
			return Roster{}, &LoadError{
				Path:    path,
				Message: "failed to unmarshal YAML",
				Cause:   err,
			}
		}
	default:
		if err := json.Unmarshal(content, &candidates); err != nil {
			return Roster{}, &LoadError{
				Path:    path,
				Message: "failed to unmarshal JSON",
				Cause:   err,
			}
		}
		if err := schemas.ValidateRoster(content); err != nil {
			return Roster{}, &LoadError{
				Path:    path,
				Message: "roster does not match schema",
				Cause:   err,
			}
		}
	}

	roster, err := NewRoster(candidates)
	if err != nil {
		return Roster{}, &LoadError{
			Path:    path,
			Message: "invalid roster",
			Cause:   err,
		}
	}
	return roster, nil
}

// LoadRosters loads the senator and party-list rosters.
func LoadRosters(senatorPath, partyListPath string) (*Rosters, error) {
	senators, err := LoadRoster(senatorPath)
	if err != nil {
		return nil, err
	}
	partyList, err := LoadRoster(partyListPath)
	if err != nil {
		return nil, err
	}
	return &Rosters{Senators: senators, PartyList: partyList}, nil
}
