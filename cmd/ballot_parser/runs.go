package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/ballot-parser/internal/config"
	"github.com/jonathan/ballot-parser/internal/db"
	"github.com/jonathan/ballot-parser/internal/observability"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect batch runs stored in the database",
}

var runsShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show a stored batch run and its ballots",
	Long: `Looks up a batch run persisted by "batch --db-url" and lists the ballot documents saved under it.
With --verbose, every stored ballot is printed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runRunsShow,
}

var (
	runsConfigPath string
	runsDBURL      string
	runsVerbose    bool
)

func init() {
	runsShowCmd.Flags().StringVar(&runsConfigPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	runsShowCmd.Flags().StringVar(&runsDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	runsShowCmd.Flags().BoolVarP(&runsVerbose, "verbose", "v", false, "Print every stored ballot")

	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

// runStore is the read side of db.DB used by "runs show".
type runStore interface {
	GetRun(ctx context.Context, runID uuid.UUID) (*db.Run, error)
	ListBallots(ctx context.Context, runID uuid.UUID) ([]string, error)
	GetBallot(ctx context.Context, runID uuid.UUID, sourcePath string) (*db.StoredBallot, error)
}

var _ runStore = (*db.DB)(nil)

func runRunsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", args[0], err)
	}

	var flags config.Config
	if cmd.Flags().Changed("db-url") {
		flags.DatabaseURL = runsDBURL
	}
	cfg, err := resolveConfig(runsConfigPath, flags, runsVerbose)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("no database configured: set --db-url or DATABASE_URL")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	return showRun(ctx, os.Stdout, database, runID, runsVerbose)
}

func showRun(ctx context.Context, out io.Writer, store runStore, runID uuid.UUID, verbose bool) error {
	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	sources, err := store.ListBallots(ctx, runID)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(out)
	printer.PrintRun(run.ID.String(), run.InputDir, run.Status, run.CreatedAt, run.CompletedAt, sources)
	if !verbose {
		return nil
	}

	for _, src := range sources {
		ballot, err := store.GetBallot(ctx, runID, src)
		if err != nil {
			return err
		}
		if ballot == nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: ballot %s disappeared from run %s\n", src, runID)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s (sha256 %s)\n", ballot.SourcePath, ballot.SourceHash)
		printer.PrintBallot(&ballot.Document)
		if ballot.Report != nil {
			printer.PrintReport(ballot.Report)
		}
	}
	return nil
}
