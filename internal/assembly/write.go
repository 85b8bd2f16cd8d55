package assembly

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jonathan/ballot-parser/internal/types"
)

// Marshal encodes a ballot document with two-space indentation. Non-ASCII text and
// characters such as & or < are written as-is rather than escaped.
func Marshal(doc *types.BallotDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes a ballot document to path, creating parent directories as needed.
// The file is written in place; a failure mid-write can leave it truncated.
func WriteJSON(path string, doc *types.BallotDocument) error {
	data, err := Marshal(doc)
	if err != nil {
		return &WriteError{Path: path, Message: "failed to marshal ballot", Cause: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Path: path, Message: "failed to create output directory", Cause: err}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Message: "failed to write file", Cause: err}
	}
	return nil
}
