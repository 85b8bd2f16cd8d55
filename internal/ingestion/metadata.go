package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/ballot-parser/internal/types"
)

var (
	locationRe        = regexp.MustCompile(`([\p{Lu}, ]+CITY[^\n]*)\n`)
	clusteredIDRe     = regexp.MustCompile(`Clustered Precinct ID:\s*(\w+)`)
	precinctsInListRe = regexp.MustCompile(`Precincts in Cluster:\s*([\s\S]*?)\n\n`)
)

// Metadata holds the header fields found on a ballot face.
type Metadata struct {
	Location            string   `json:"location"`
	ClusteredPrecinctID string   `json:"clustered_precinct_id"`
	Precincts           []string `json:"precincts_in_cluster"`
}

// ExtractMetadata scans ballot text for location, clustered precinct id and member precincts.
// Missing fields fall back to UNKNOWN (or an empty list); it never fails.
func ExtractMetadata(text string) Metadata {
	meta := Metadata{
		Location:            types.UnknownValue,
		ClusteredPrecinctID: types.UnknownValue,
		Precincts:           []string{},
	}

	if m := locationRe.FindStringSubmatch(text); m != nil {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			meta.Location = loc
		}
	}

	if m := clusteredIDRe.FindStringSubmatch(text); m != nil {
		meta.ClusteredPrecinctID = m[1]
	}

	if m := precinctsInListRe.FindStringSubmatch(text); m != nil {
		meta.Precincts = splitPrecincts(m[1])
	}

	return meta
}

// splitPrecincts splits a newline/comma separated block into trimmed, non-empty ids
func splitPrecincts(block string) []string {
	block = strings.ReplaceAll(block, "\n", ",")
	parts := strings.Split(block, ",")
	precincts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			precincts = append(precincts, p)
		}
	}
	return precincts
}

// SourceInfo identifies the document a ballot was parsed from.
type SourceInfo struct {
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
}

// NewSourceInfo creates a SourceInfo with the current timestamp
func NewSourceInfo(path, content string) *SourceInfo {
	return &SourceInfo{
		Path:      path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
