// Package schemas holds the JSON Schemas for ballot documents and reference rosters.
package schemas

import "embed"

// Schema file names within FS.
const (
	BallotSchema = "ballot.schema.json"
	RosterSchema = "roster.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
