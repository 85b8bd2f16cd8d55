package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/ballot-parser/internal/config"
	"github.com/jonathan/ballot-parser/internal/db"
	"github.com/jonathan/ballot-parser/internal/observability"
	"github.com/jonathan/ballot-parser/internal/pipeline"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every ballot template in a directory",
	Long: `Parses each ballot template in the input directory, in name order, and writes one JSON document per
template into the output directory. The run stops at the first document that fails.

Configuration can be loaded from a JSON or YAML file using --config. Environment variables override
the config file and command-line arguments override both.`,
	RunE: runBatch,
}

var (
	batchConfigPath string
	batchInDir      string
	batchOutDir     string
	batchSenators   string
	batchPartyList  string
	batchExt        string
	batchJobs       int
	batchDBURL      string
	batchValidate   bool
	batchVerbose    bool
)

func init() {
	// Config file flag (processed first)
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config file (.json, .yaml or .yml)")

	batchCmd.Flags().StringVarP(&batchInDir, "in-dir", "i", "", "Directory of ballot templates (default input_pdfs)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "", "Directory for JSON output (default output_jsons)")
	batchCmd.Flags().StringVar(&batchSenators, "senators", "", "Senator roster file (default senator_candidates_full.json)")
	batchCmd.Flags().StringVar(&batchPartyList, "partylist", "", "Party list roster file (default party_list_full.json)")
	batchCmd.Flags().StringVar(&batchExt, "ext", "", "Input file extension (default .pdf)")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "Documents to process concurrently (default 1)")
	batchCmd.Flags().BoolVar(&batchValidate, "validate-output", false, "Validate every written document against the ballot schema")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for ballot persistence
	batchCmd.Flags().StringVar(&batchDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Only explicitly set flags override config and environment
	var flags config.Config
	if cmd.Flags().Changed("in-dir") {
		flags.InputDir = batchInDir
	}
	if cmd.Flags().Changed("out-dir") {
		flags.OutputDir = batchOutDir
	}
	if cmd.Flags().Changed("senators") {
		flags.SenatorFile = batchSenators
	}
	if cmd.Flags().Changed("partylist") {
		flags.PartyListFile = batchPartyList
	}
	if cmd.Flags().Changed("ext") {
		flags.Extension = batchExt
	}
	if cmd.Flags().Changed("jobs") {
		flags.Jobs = batchJobs
	}
	if cmd.Flags().Changed("db-url") {
		flags.DatabaseURL = batchDBURL
	}
	flags.ValidateOutput = batchValidate
	flags.Verbose = batchVerbose

	cfg, err := resolveConfig(batchConfigPath, flags, batchVerbose)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.InputDir); os.IsNotExist(err) {
		return fmt.Errorf("input directory not found: %s", cfg.InputDir)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Step 1/3: Loading reference rosters...\n")
	processor, err := newProcessor(cfg)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "[VERBOSE] Loaded %d senators from %s\n", processor.Rosters.Senators.Len(), cfg.SenatorFile)
		_, _ = fmt.Fprintf(os.Stdout, "[VERBOSE] Loaded %d party list groups from %s\n", processor.Rosters.PartyList.Len(), cfg.PartyListFile)
	}

	opts := pipeline.BatchOptions{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Extension: cfg.Extension,
		Jobs:      cfg.Jobs,
		Verbose:   cfg.Verbose,
		Out:       os.Stdout,
	}

	// Initialize database connection if configured
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database = connectDatabase(ctx, cfg)
		if database != nil {
			defer database.Close()
			runID, err := database.CreateRun(ctx, cfg.InputDir)
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Failed to create database run: %v\n", err)
				database = nil
			} else {
				opts.RunID = runID
				opts.Sink = db.NewRunSink(database, runID)
				if cfg.Verbose {
					_, _ = fmt.Fprintf(os.Stdout, "[VERBOSE] Created database run: %s\n", runID)
				}
			}
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Step 2/3: Parsing ballot templates in %s...\n", cfg.InputDir)
	opts.OnProgress = progressReporter(os.Stdout, cfg.Verbose)

	summary, runErr := pipeline.NewBatchProcessor(processor, opts).Run(ctx)

	if database != nil {
		status := db.RunStatusCompleted
		if runErr != nil {
			status = db.RunStatusFailed
		}
		if err := database.CompleteRun(ctx, opts.RunID, status); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Failed to complete database run: %v\n", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("batch failed: %w", runErr)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Step 3/3: Done\n")
	observability.NewPrinter(os.Stdout).PrintBatchSummary(summary.RunID.String(), summary.Processed, summary.Positions, summary.Dropped)
	return nil
}

// connectDatabase opens the database and ensures its schema. Failures only disable persistence.
func connectDatabase(ctx context.Context, cfg config.Config) *db.DB {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Failed to connect to database: %v\n", err)
		_, _ = fmt.Fprintf(os.Stderr, "Continuing without database persistence...\n")
		return nil
	}
	if err := database.EnsureSchema(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		_, _ = fmt.Fprintf(os.Stderr, "Continuing without database persistence...\n")
		database.Close()
		return nil
	}
	if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "[VERBOSE] Connected to database\n")
	}
	return database
}

// progressReporter prints verbose step lines, or drives a progress bar otherwise.
func progressReporter(out io.Writer, verbose bool) pipeline.ProgressCallback {
	var bar *observability.Progress

	return func(event pipeline.ProgressEvent) {
		if verbose {
			_, _ = fmt.Fprintf(out, "[VERBOSE] %s\n", event.Message)
			return
		}

		switch event.Step {
		case pipeline.StepDiscovered:
			_, _ = fmt.Fprintf(out, "%s\n", event.Message)
			bar = observability.NewProgress(out, event.Total)
		case pipeline.StepDocument:
			if bar != nil {
				bar.Increment(event.File)
			}
		case pipeline.StepCompleted:
			if bar != nil {
				bar.Finish()
			}
			_, _ = fmt.Fprintf(out, "%s\n", event.Message)
		}
	}
}
