package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ballot-parser/internal/testutil"
	"github.com/jonathan/ballot-parser/internal/types"
)

func TestExtractMetadata_SampleBallot(t *testing.T) {
	meta := ExtractMetadata(CleanText(testutil.SampleBallotText))

	assert.Equal(t, "QUEZON CITY, NCR, THIRD DISTRICT", meta.Location)
	assert.Equal(t, "74010023", meta.ClusteredPrecinctID)
	assert.Equal(t, []string{"0001A", "0001B", "0002A"}, meta.Precincts)
}

func TestExtractMetadata_Defaults(t *testing.T) {
	meta := ExtractMetadata("no recognizable header here\n")

	assert.Equal(t, types.UnknownValue, meta.Location)
	assert.Equal(t, types.UnknownValue, meta.ClusteredPrecinctID)
	require.NotNil(t, meta.Precincts)
	assert.Empty(t, meta.Precincts)
}

func TestExtractMetadata_Location(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "enye", text: "LAS PIÑAS CITY\n", want: "LAS PIÑAS CITY"},
		{name: "trailing province", text: "header\nSAN JOSE DEL MONTE CITY, BULACAN\n", want: "SAN JOSE DEL MONTE CITY, BULACAN"},
		{name: "lowercase is ignored", text: "Quezon City\n", want: types.UnknownValue},
		{name: "needs line end", text: "MAKATI CITY", want: types.UnknownValue},
		{name: "first match wins", text: "PASIG CITY\nTAGUIG CITY\n", want: "PASIG CITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMetadata(tt.text).Location)
		})
	}
}

func TestExtractMetadata_LocationSpacingNormalized(t *testing.T) {
	raw := "OFFICIAL BALLOT\nQUEZON  CITY,   DISTRICT 1\t\nClustered Precinct ID: 74010023\n"

	assert.Equal(t, "QUEZON CITY, DISTRICT 1", ExtractMetadata(CleanText(raw)).Location)
	assert.Equal(t, "QUEZON  CITY,   DISTRICT 1", ExtractMetadata(raw).Location, "only CleanText respaces")
}

func TestExtractMetadata_Precincts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "comma list", text: "Precincts in Cluster: 0001A, 0002B\n\n", want: []string{"0001A", "0002B"}},
		{name: "multi line", text: "Precincts in Cluster:\n0001A,\n0002B\n0003C\n\nSENATOR", want: []string{"0001A", "0002B", "0003C"}},
		{name: "drops empties", text: "Precincts in Cluster: ,0001A,, ,0002B,\n\n", want: []string{"0001A", "0002B"}},
		{name: "no terminator", text: "Precincts in Cluster: 0001A\n", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMetadata(tt.text).Precincts)
		})
	}
}

func TestExtractMetadata_ClusteredPrecinctID(t *testing.T) {
	meta := ExtractMetadata("Clustered Precinct ID:   13050041 extra\n")
	assert.Equal(t, "13050041", meta.ClusteredPrecinctID)
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}

func TestNewSourceInfo(t *testing.T) {
	info := NewSourceInfo("ballots/a.pdf", "content")

	assert.Equal(t, "ballots/a.pdf", info.Path)
	assert.Equal(t, computeHash("content"), info.Hash)
	_, err := time.Parse(time.RFC3339, info.Timestamp)
	assert.NoError(t, err)
}
