package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/ballot-parser/internal/schemas"
	"github.com/jonathan/ballot-parser/internal/types"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate ballot JSON documents",
	Long: `Checks each ballot JSON document against the embedded ballot schema and the document invariants
(unique positions, increasing candidate numbers).

With --schema, each file is checked only against the given JSON Schema file instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var validateSchemaPath string

func init() {
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Validate against this JSON Schema file instead of the ballot schema")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	check := validateBallotFile
	if validateSchemaPath != "" {
		schemaPath := validateSchemaPath
		check = func(path string) error {
			return validateAgainstSchema(schemaPath, path)
		}
	}

	failed := 0
	for _, path := range args {
		if err := check(path); err != nil {
			failed++
			_, _ = fmt.Fprintf(os.Stdout, "✗ %s\n", path)
			_, _ = fmt.Fprintf(os.Stdout, "  %v\n", err)
			continue
		}
		_, _ = fmt.Fprintf(os.Stdout, "✓ %s\n", path)
	}

	if failed > 0 {
		// Return error to indicate invalid documents (exit code 1)
		return fmt.Errorf("%d of %d document(s) invalid", failed, len(args))
	}
	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %d document(s)\n", len(args))
	return nil
}

func validateBallotFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := schemas.ValidateBallot(data); err != nil {
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &schemaLoadErr) {
			return fmt.Errorf("could not load ballot schema: %w", err)
		}
		return err
	}

	var doc types.BallotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal ballot JSON: %w", err)
	}
	return doc.Validate()
}

func validateAgainstSchema(schemaPath, path string) error {
	err := schemas.ValidateJSON(schemaPath, path)
	var schemaLoadErr *schemas.SchemaLoadError
	if errors.As(err, &schemaLoadErr) {
		return fmt.Errorf("could not load schema %s: %w", schemaPath, err)
	}
	return err
}
