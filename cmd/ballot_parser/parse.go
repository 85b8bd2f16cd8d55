package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/ballot-parser/internal/config"
	"github.com/jonathan/ballot-parser/internal/observability"
	"github.com/jonathan/ballot-parser/internal/pipeline"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a single ballot template into JSON",
	Long:  "Parses one ballot template and writes its ballot document. Without --out the document is written to <output_dir>/<stem>.json.",
	RunE:  runParse,
}

var (
	parseConfigPath string
	parseInput      string
	parseOutput     string
	parseSenators   string
	parsePartyList  string
	parseValidate   bool
	parseVerbose    bool
)

func init() {
	parseCmd.Flags().StringVar(&parseConfigPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	parseCmd.Flags().StringVarP(&parseInput, "in", "i", "", "Path to ballot template (required)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Path to output JSON file")
	parseCmd.Flags().StringVar(&parseSenators, "senators", "", "Senator roster file (default senator_candidates_full.json)")
	parseCmd.Flags().StringVar(&parsePartyList, "partylist", "", "Party list roster file (default party_list_full.json)")
	parseCmd.Flags().BoolVar(&parseValidate, "validate-output", false, "Validate the written document against the ballot schema")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := parseCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Validate input file exists
	if _, err := os.Stat(parseInput); os.IsNotExist(err) {
		return fmt.Errorf("ballot template not found: %s", parseInput)
	}

	var flags config.Config
	if cmd.Flags().Changed("senators") {
		flags.SenatorFile = parseSenators
	}
	if cmd.Flags().Changed("partylist") {
		flags.PartyListFile = parsePartyList
	}
	flags.ValidateOutput = parseValidate
	flags.Verbose = parseVerbose

	cfg, err := resolveConfig(parseConfigPath, flags, parseVerbose)
	if err != nil {
		return err
	}

	processor, err := newProcessor(cfg)
	if err != nil {
		return err
	}

	outPath := parseOutput
	if outPath == "" {
		outPath = pipeline.OutputPath(cfg.OutputDir, parseInput)
	}

	result, err := processor.ProcessFile(ctx, parseInput, outPath)
	if err != nil {
		return fmt.Errorf("failed to parse ballot: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintBallot(result.Document)
		printer.PrintReport(result.Report)
	} else if result.Report.HasIssues() {
		for _, d := range result.Report.DroppedSections {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Dropped section %q: %s\n", d.Name, d.Reason)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Parsed %d positions from %s\n", len(result.Document.Positions), parseInput)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", outPath)
	return nil
}
