package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "count"],
	"properties": {
		"name": {"type": "string"},
		"count": {"type": "integer", "minimum": 1}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)

	tests := []struct {
		name      string
		content   string
		wantError bool
	}{
		{name: "valid", content: `{"name": "a", "count": 2}`},
		{name: "missing field", content: `{"name": "a"}`, wantError: true},
		{name: "wrong type", content: `{"name": 1, "count": 2}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, tt.name+".json", tt.content)
			err := ValidateJSON(schemaPath, jsonPath)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "a", "count": 1}`)

	err := ValidateJSON(filepath.Join(dir, "nope.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "broken.schema.json", `{ invalid`)
	jsonPath := writeFile(t, dir, "doc.json", `{}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "positions.0.vote_for", Message: "Must be greater than or equal to 1"}}}
	assert.Contains(t, err.Error(), "1. positions.0.vote_for: Must be greater than or equal to 1")
}

const minimalBallot = `{
	"election_date": "MAY 12, 2025",
	"location": "QUEZON CITY",
	"clustered_precinct_id": "74010023",
	"precincts_in_cluster": ["0001A"],
	"positions": [
		{"position": "SENATOR", "vote_for": 12, "instructions": {"english": "e", "filipino": "f"},
		 "candidates": [{"number": 1, "name": "A", "party": "X"}]},
		{"position": "PARTY LIST", "vote_for": 1, "instructions": {"english": "e", "filipino": "f"},
		 "candidates": [{"number": 1, "name": "B", "party": "Y"}]}
	]
}`

func TestValidateBallot(t *testing.T) {
	assert.NoError(t, ValidateBallot([]byte(minimalBallot)))

	err := ValidateBallot([]byte(`{"election_date": "MAY 12, 2025"}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)

	stringNumber := `{"election_date": "x", "location": "y", "clustered_precinct_id": "z", "precincts_in_cluster": [],
		"positions": [
			{"position": "A", "vote_for": 1, "instructions": {"english": "e", "filipino": "f"}, "candidates": [{"number": "1", "name": "A", "party": "X"}]},
			{"position": "B", "vote_for": 1, "instructions": {"english": "e", "filipino": "f"}, "candidates": [{"number": 1, "name": "B", "party": "Y"}]}
		]}`
	assert.Error(t, ValidateBallot([]byte(stringNumber)), "written ballots use integer numbers")
}

func TestValidateBallotFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ValidateBallotFile(writeFile(t, dir, "ok.json", minimalBallot)))
	assert.Error(t, ValidateBallotFile(filepath.Join(dir, "missing.json")))
}

func TestValidateRoster(t *testing.T) {
	assert.NoError(t, ValidateRoster([]byte(`[{"number": 1, "name": "A", "party": "B"}]`)))
	assert.Error(t, ValidateRoster([]byte(`{"number": 1}`)))
}
