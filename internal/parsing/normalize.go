// Package parsing splits ballot text into position sections and extracts numbered candidates.
package parsing

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/ballot-parser/internal/types"
)

// NormalizeName joins a possibly multi-line name into a single-spaced NFC string
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// NormalizeParty collapses whitespace in a party group and defaults blanks to the independent marker
func NormalizeParty(party string) string {
	return types.PartyOrIndependent(strings.Join(strings.Fields(party), " "))
}
