package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the ballot_parser binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "ballot_parser"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/ballot_parser ./cmd/ballot_parser'", binaryPath)
	}

	return binaryPath
}
