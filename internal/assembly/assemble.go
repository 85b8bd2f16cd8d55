// Package assembly builds ballot documents from parsed parts and writes them as JSON.
package assembly

import (
	"github.com/jonathan/ballot-parser/internal/ingestion"
	"github.com/jonathan/ballot-parser/internal/reference"
	"github.com/jonathan/ballot-parser/internal/types"
)

// Assemble builds the ballot document. SENATOR and PARTY LIST always come first with their
// reference rosters verbatim, followed by the discovered positions in the order given.
func Assemble(electionDate string, meta ingestion.Metadata, rosters *reference.Rosters, discovered []types.Position) *types.BallotDocument {
	if electionDate == "" {
		electionDate = types.ElectionDate
	}

	precincts := meta.Precincts
	if precincts == nil {
		precincts = []string{}
	}

	positions := make([]types.Position, 0, len(discovered)+2)
	positions = append(positions, SenatorPosition(rosters.Senators), PartyListPosition(rosters.PartyList))
	positions = append(positions, discovered...)

	return &types.BallotDocument{
		ElectionDate:        electionDate,
		Location:            meta.Location,
		ClusteredPrecinctID: meta.ClusteredPrecinctID,
		PrecinctsInCluster:  precincts,
		Positions:           positions,
	}
}

// SenatorPosition returns the fixed senator position.
func SenatorPosition(roster reference.Roster) types.Position {
	return types.Position{
		Name:         types.SenatorPosition,
		VoteFor:      types.SenatorVoteFor,
		Instructions: types.DefaultInstructions,
		Candidates:   roster.Candidates(),
	}
}

// PartyListPosition returns the fixed party-list position with its own instructions.
func PartyListPosition(roster reference.Roster) types.Position {
	return types.Position{
		Name:         types.PartyListPosition,
		VoteFor:      types.PartyListVoteFor,
		Instructions: types.PartyListInstructions,
		Candidates:   roster.Candidates(),
	}
}
