package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ballot-parser/internal/types"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Single line", "ABALOS, BENHUR", "ABALOS, BENHUR"},
		{"Multi line", "DE LEON, JOSÉ\nMARIA", "DE LEON, JOSÉ MARIA"},
		{"Extra spaces", "  DELA   CRUZ,\n\n JUAN  ", "DELA CRUZ, JUAN"},
		{"Decomposed enye", "PEN\u0303A, CARLOS", "PEÑA, CARLOS"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeParty(t *testing.T) {
	assert.Equal(t, types.IndependentParty, NormalizeParty(""))
	assert.Equal(t, types.IndependentParty, NormalizeParty(" \n\t "))
	assert.Equal(t, "AKBAYAN CITIZENS ACTION", NormalizeParty("AKBAYAN\nCITIZENS  ACTION"))
}
