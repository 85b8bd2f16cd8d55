// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/ballot-parser/internal/types"
)

// Roster sizes of the 2025 national ballot.
const (
	SenatorCount   = 66
	PartyListCount = 156
)

// MakeRoster returns n candidates numbered 1..n with deterministic names and parties.
func MakeRoster(prefix string, n int) []types.Candidate {
	out := make([]types.Candidate, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, types.Candidate{
			Number: i,
			Name:   fmt.Sprintf("%s %03d", prefix, i),
			Party:  fmt.Sprintf("P%d", i%7),
		})
	}
	return out
}

// WriteRoster writes candidates as JSON into dir and returns the file path.
func WriteRoster(t *testing.T, dir, name string, candidates []types.Candidate) string {
	t.Helper()

	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal roster: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}
	return path
}

// WriteNationalRosters writes full-size senator and party-list rosters into dir.
func WriteNationalRosters(t *testing.T, dir string) (senatorPath, partyListPath string) {
	t.Helper()

	senatorPath = WriteRoster(t, dir, "senator_candidates_full.json", MakeRoster("SENATOR, Ñ", SenatorCount))
	partyListPath = WriteRoster(t, dir, "party_list_full.json", MakeRoster("PARTY", PartyListCount))
	return senatorPath, partyListPath
}

// SampleBallotText is an extracted ballot face with metadata, two local positions, a repeated header
// and a section that matches no candidate pattern.
const SampleBallotText = `OFFICIAL BALLOT
Ballot ID: 0001
NATIONAL AND LOCAL ELECTIONS
QUEZON CITY, NCR, THIRD DISTRICT
Clustered Precinct ID: 74010023
Precincts in Cluster: 0001A, 0001B,
0002A

SENATOR / Vote for 12
1. ABALOS, BENHUR (PFP)
PARTY LIST / Vote for 1
MEMBER, HOUSE OF REPRESENTATIVES / Vote for 1
2. VILLAR, CAMILLE (NP)
1. DE LEON, JOSÉ
MARIA (LAKAS)
MAYOR / Vote for 1
1. PEÑA, CARLOS ()
VICE-MAYOR / Vote for 1
No candidates filed
MEMBER, HOUSE OF REPRESENTATIVES / Vote for 1
9. SHOULD NOT APPEAR (XYZ)
`
