// Package main provides the entry point for the ballot_parser CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ballot_parser",
	Short: "Ballot face template parser",
	Long:  "ballot_parser converts 2025 ballot face template PDFs into structured JSON ballot documents with every position and candidate in ballot order.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
