package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ballot-parser/internal/ingestion"
	"github.com/jonathan/ballot-parser/internal/reference"
	"github.com/jonathan/ballot-parser/internal/testutil"
	"github.com/jonathan/ballot-parser/internal/types"
)

func nationalRosters(t *testing.T) *reference.Rosters {
	t.Helper()
	senators, err := reference.NewRoster(testutil.MakeRoster("SENATOR", testutil.SenatorCount))
	require.NoError(t, err)
	partyList, err := reference.NewRoster(testutil.MakeRoster("PARTY", testutil.PartyListCount))
	require.NoError(t, err)
	return &reference.Rosters{Senators: senators, PartyList: partyList}
}

func TestAssemble_FixedPositionsOnly(t *testing.T) {
	rosters := nationalRosters(t)
	meta := ingestion.ExtractMetadata("")

	doc := Assemble("", meta, rosters, nil)

	assert.Equal(t, types.ElectionDate, doc.ElectionDate)
	assert.Equal(t, types.UnknownValue, doc.Location)
	assert.Equal(t, types.UnknownValue, doc.ClusteredPrecinctID)
	assert.NotNil(t, doc.PrecinctsInCluster)

	require.Len(t, doc.Positions, 2)
	senator := doc.Positions[0]
	assert.Equal(t, types.SenatorPosition, senator.Name)
	assert.Equal(t, 12, senator.VoteFor)
	assert.Equal(t, types.DefaultInstructions, senator.Instructions)
	assert.Equal(t, testutil.MakeRoster("SENATOR", testutil.SenatorCount), senator.Candidates)

	partyList := doc.Positions[1]
	assert.Equal(t, types.PartyListPosition, partyList.Name)
	assert.Equal(t, 1, partyList.VoteFor)
	assert.Equal(t, types.PartyListInstructions, partyList.Instructions)
	assert.Len(t, partyList.Candidates, testutil.PartyListCount)

	assert.NoError(t, doc.Validate())
}

func TestAssemble_AppendsDiscoveredInOrder(t *testing.T) {
	discovered := []types.Position{
		{Name: "GOVERNOR", VoteFor: 1, Instructions: types.DefaultInstructions,
			Candidates: []types.Candidate{{Number: 1, Name: "A", Party: "X"}}},
		{Name: "MAYOR", VoteFor: 1, Instructions: types.DefaultInstructions,
			Candidates: []types.Candidate{{Number: 1, Name: "B", Party: "Y"}}},
	}
	meta := ingestion.Metadata{Location: "PASIG CITY", ClusteredPrecinctID: "1", Precincts: []string{"0001A"}}

	doc := Assemble("OCTOBER 1, 2025", meta, nationalRosters(t), discovered)

	assert.Equal(t, "OCTOBER 1, 2025", doc.ElectionDate)
	assert.Equal(t, []string{"0001A"}, doc.PrecinctsInCluster)
	names := make([]string, 0, len(doc.Positions))
	for _, p := range doc.Positions {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{types.SenatorPosition, types.PartyListPosition, "GOVERNOR", "MAYOR"}, names)
}

func TestAssemble_DocumentsDoNotShareRosterSlices(t *testing.T) {
	rosters := nationalRosters(t)
	first := Assemble("", ingestion.Metadata{}, rosters, nil)
	first.Positions[0].Candidates[0].Name = "CHANGED"

	second := Assemble("", ingestion.Metadata{}, rosters, nil)
	assert.Equal(t, "SENATOR 001", second.Positions[0].Candidates[0].Name)
}
