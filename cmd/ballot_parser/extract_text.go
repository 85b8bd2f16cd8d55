package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/ballot-parser/internal/ingestion"
	"github.com/spf13/cobra"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text",
	Short: "Print the extracted text of a ballot template",
	Long:  "Extracts a ballot template's text the same way the parser sees it. Useful for checking why a section was dropped.",
	RunE:  runExtractText,
}

var (
	extractTextInput  string
	extractTextOutput string
	extractTextRaw    bool
	extractTextRows   bool
)

func init() {
	extractTextCmd.Flags().StringVarP(&extractTextInput, "in", "i", "", "Path to ballot template (required)")
	extractTextCmd.Flags().StringVarP(&extractTextOutput, "out", "o", "", "Write text to this file instead of stdout")
	extractTextCmd.Flags().BoolVar(&extractTextRaw, "raw", false, "Skip whitespace and Unicode cleanup")
	extractTextCmd.Flags().BoolVar(&extractTextRows, "rows", false, "Read PDFs row by row instead of column by column")

	if err := extractTextCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractTextCmd)
}

func runExtractText(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if _, err := os.Stat(extractTextInput); os.IsNotExist(err) {
		return fmt.Errorf("ballot template not found: %s", extractTextInput)
	}

	extractor := ingestion.ExtensionExtractor{PDF: &ingestion.PDFExtractor{
		ByColumn:  !extractTextRows,
		OnWarning: printPDFWarning,
	}}
	text, err := extractor.Extract(ctx, extractTextInput)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}
	if !extractTextRaw {
		text = ingestion.CleanText(text)
	}

	if extractTextOutput == "" {
		_, _ = fmt.Fprint(os.Stdout, text)
		return nil
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(extractTextOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(extractTextOutput, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write text to output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", extractTextOutput)
	return nil
}
