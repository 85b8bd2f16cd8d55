package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBallotJSON = `{
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

const unorderedBallotJSON = `{
  "election_date": "MAY 12, 2025",
  "location": "QUEZON CITY",
  "clustered_precinct_id": "74010023",
  "precincts_in_cluster": [],
  "positions": [
    {"position": "SENATOR", "vote_for": 12, "instructions": {"english": "e", "filipino": "f"},
     "candidates": [{"number": 2, "name": "A", "party": "X"}, {"number": 1, "name": "C", "party": "X"}]},
    {"position": "PARTY LIST", "vote_for": 1, "instructions": {"english": "e", "filipino": "f"},
     "candidates": [{"number": 1, "name": "B", "party": "Y"}]}
  ]
}`

func TestValidateBallotFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "valid", content: validBallotJSON},
		{name: "schema violation", content: `{"election_date": "MAY 12, 2025"}`, wantErr: "validation failed"},
		{name: "unordered candidates", content: unorderedBallotJSON, wantErr: "strictly increasing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			err := validateBallotFile(path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, validateBallotFile(filepath.Join(tmpDir, "missing.json")))
}

func TestValidateAgainstSchema(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "roster.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"type": "object", "required": ["number", "name"]}
}`), 0644))

	roster := filepath.Join(tmpDir, "senators.json")
	require.NoError(t, os.WriteFile(roster, []byte(`[{"number": 1, "name": "A"}]`), 0644))
	assert.NoError(t, validateAgainstSchema(schemaPath, roster))

	ballot := filepath.Join(tmpDir, "ballot.json")
	require.NoError(t, os.WriteFile(ballot, []byte(validBallotJSON), 0644))
	err := validateAgainstSchema(schemaPath, ballot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	broken := filepath.Join(tmpDir, "broken.schema.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{ invalid`), 0644))
	err = validateAgainstSchema(broken, roster)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not load schema")
}

func TestValidateCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	good := filepath.Join(tmpDir, "good.json")
	bad := filepath.Join(tmpDir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(validBallotJSON), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(unorderedBallotJSON), 0644))

	output, err := exec.Command(binaryPath, "validate", good).CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Validation passed: 1 document(s)")

	output, err = exec.Command(binaryPath, "validate", good, bad).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "1 of 2 document(s) invalid")
}

func TestValidateCommand_SchemaFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	schemaPath := filepath.Join(tmpDir, "roster.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"$schema": "http://json-schema.org/draft-07/schema#", "type": "array"}`), 0644))
	roster := filepath.Join(tmpDir, "senators.json")
	require.NoError(t, os.WriteFile(roster, []byte(`[{"number": 1, "name": "A"}]`), 0644))

	output, err := exec.Command(binaryPath, "validate", "--schema", schemaPath, roster).CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Validation passed: 1 document(s)")
}
