// Package types provides type definitions for structured data used throughout the ballot parser.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ElectionDate is written verbatim into every ballot document.
const ElectionDate = "MAY 12, 2025"

// UnknownValue is used for metadata fields that could not be found in the source text.
const UnknownValue = "UNKNOWN"

// IndependentParty marks a candidate whose party group is empty.
const IndependentParty = "IND"

// Fixed positions that are always present, in this order, at the top of every ballot.
const (
	SenatorPosition   = "SENATOR"
	SenatorVoteFor    = 12
	PartyListPosition = "PARTY LIST"
	PartyListVoteFor  = 1
)

// DefaultInstructions apply to every position except PARTY LIST.
var DefaultInstructions = Instructions{
	English:  "Mark the inside of the circle beside the name of the desired candidate.",
	Filipino: "Markahan ang loob ng bilog sa tabi ng nais ibotong kandidato.",
}

// PartyListInstructions apply only to the PARTY LIST position.
var PartyListInstructions = Instructions{
	English:  "For PARTY LIST CANDIDATES, CHECK THE BACK OF THIS BALLOT",
	Filipino: "Para sa mga kandidato ng Party List, tingnan ang likod ng balotang ito",
}

// BallotDocument is the structured representation of one ballot face template.
type BallotDocument struct {
	ElectionDate        string     `json:"election_date" yaml:"election_date" validate:"required"`
	Location            string     `json:"location" yaml:"location" validate:"required"`
	ClusteredPrecinctID string     `json:"clustered_precinct_id" yaml:"clustered_precinct_id" validate:"required"`
	PrecinctsInCluster  []string   `json:"precincts_in_cluster" yaml:"precincts_in_cluster"`
	Positions           []Position `json:"positions" yaml:"positions" validate:"min=2,dive"`
}

// Position is one elected office on the ballot.
type Position struct {
	Name         string       `json:"position" yaml:"position" validate:"required"`
	VoteFor      int          `json:"vote_for" yaml:"vote_for" validate:"gte=1"`
	Instructions Instructions `json:"instructions" yaml:"instructions"`
	Candidates   []Candidate  `json:"candidates" yaml:"candidates" validate:"min=1,dive"`
}

// Instructions is the bilingual voting instruction pair for a position.
type Instructions struct {
	English  string `json:"english" yaml:"english" validate:"required"`
	Filipino string `json:"filipino" yaml:"filipino" validate:"required"`
}

// Candidate is a single numbered entry within a position.
type Candidate struct {
	Number int    `json:"number" yaml:"number" validate:"gte=1"`
	Name   string `json:"name" yaml:"name" validate:"required"`
	Party  string `json:"party" yaml:"party"`
}

// UnmarshalJSON accepts the ballot number as either a JSON number or a numeric string.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number json.RawMessage `json:"number"`
		Name   string          `json:"name"`
		Party  string          `json:"party"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	number, err := parseBallotNumber(raw.Number)
	if err != nil {
		return err
	}

	c.Number = number
	c.Name = raw.Name
	c.Party = raw.Party
	return nil
}

func parseBallotNumber(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("candidate number must be a number or numeric string: %s", string(raw))
	}
	return atoiBallotNumber(s)
}

// UnmarshalYAML mirrors UnmarshalJSON so YAML rosters may quote their numbers.
func (c *Candidate) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Number yaml.Node `yaml:"number"`
		Name   string    `yaml:"name"`
		Party  string    `yaml:"party"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	number := 0
	switch {
	case raw.Number.Kind == 0 || raw.Number.Tag == "!!null":
	case raw.Number.Kind != yaml.ScalarNode:
		return fmt.Errorf("line %d: candidate number must be a number or numeric string", raw.Number.Line)
	default:
		n, err := atoiBallotNumber(raw.Number.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", raw.Number.Line, err)
		}
		number = n
	}

	c.Number = number
	c.Name = raw.Name
	c.Party = raw.Party
	return nil
}

func atoiBallotNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("candidate number %q is not numeric: %w", s, err)
	}
	return n, nil
}

// PartyOrIndependent returns the trimmed party, or IndependentParty if it is blank.
func PartyOrIndependent(party string) string {
	party = strings.TrimSpace(party)
	if party == "" {
		return IndependentParty
	}
	return party
}

// Validate validates the Candidate using the validator.
func (c *Candidate) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Validate validates the Position and checks that candidate numbers are unique and ascending.
func (p *Position) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}
	return checkCandidateOrder(p.Name, p.Candidates)
}

// Validate validates the whole document, including every position.
func (d *BallotDocument) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Positions))
	for i := range d.Positions {
		pos := &d.Positions[i]
		if seen[pos.Name] {
			return fmt.Errorf("position %q appears more than once", pos.Name)
		}
		seen[pos.Name] = true
		if err := pos.Validate(); err != nil {
			return fmt.Errorf("positions[%d]: %w", i, err)
		}
	}
	return nil
}

func checkCandidateOrder(position string, candidates []Candidate) error {
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Number <= candidates[i-1].Number {
			return fmt.Errorf("position %q: candidate numbers must be strictly increasing (%d follows %d)",
				position, candidates[i].Number, candidates[i-1].Number)
		}
	}
	return nil
}
