// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/ballot-parser/internal/parsing"
	"github.com/jonathan/ballot-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintBallot outputs a human-readable summary of an assembled ballot document.
func (p *Printer) PrintBallot(doc *types.BallotDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Location:  %s\n", doc.Location))
	sb.WriteString(fmt.Sprintf("Cluster:   %s\n", doc.ClusteredPrecinctID))
	sb.WriteString(fmt.Sprintf("Precincts: %s\n", precinctList(doc.PrecinctsInCluster)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Positions (%d):\n", len(doc.Positions)))
	for _, pos := range doc.Positions {
		sb.WriteString(fmt.Sprintf("  • %s (vote for %d): %d candidates\n", pos.Name, pos.VoteFor, len(pos.Candidates)))
	}

	p.printBox("PARSED BALLOT", strings.TrimSuffix(sb.String(), "\n"))
}

func precinctList(precincts []string) string {
	if len(precincts) == 0 {
		return "(none)"
	}
	if len(precincts) <= maxItemsToShow {
		return strings.Join(precincts, ", ")
	}
	return fmt.Sprintf("%s ... and %d more",
		strings.Join(precincts[:maxItemsToShow], ", "), len(precincts)-maxItemsToShow)
}

// PrintReport outputs the sections and entries the parser skipped.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *parsing.Report) {
	if !report.HasIssues() {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO SECTIONS DROPPED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if len(report.DroppedSections) > 0 {
		sb.WriteString(fmt.Sprintf("Dropped %d sections:\n", len(report.DroppedSections)))
		for _, d := range report.DroppedSections {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", d.Name))
			sb.WriteString(fmt.Sprintf("  %s\n", d.Reason))
		}
	}

	if len(report.DuplicateNumbers) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Duplicate candidate numbers:\n")
		count := min(len(report.DuplicateNumbers), maxItemsToShow)
		for i := 0; i < count; i++ {
			d := report.DuplicateNumbers[i]
			sb.WriteString(fmt.Sprintf("  • %s #%d\n", d.Position, d.Number))
		}
		if len(report.DuplicateNumbers) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.DuplicateNumbers)-maxItemsToShow))
		}
	}

	p.printBox("PARSE DIAGNOSTICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the totals of a finished batch run.
func (p *Printer) PrintBatchSummary(runID string, files, positions, dropped int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", runID))
	sb.WriteString(fmt.Sprintf("Documents: %d\n", files))
	sb.WriteString(fmt.Sprintf("Positions: %d\n", positions))
	sb.WriteString(fmt.Sprintf("Dropped:   %d", dropped))

	p.printBox("BATCH SUMMARY", sb.String())
}

// PrintRun outputs a stored batch run and the source paths saved under it.
func (p *Printer) PrintRun(runID, inputDir, status string, createdAt time.Time, completedAt *time.Time, sources []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", runID))
	sb.WriteString(fmt.Sprintf("Input:     %s\n", inputDir))
	sb.WriteString(fmt.Sprintf("Status:    %s\n", status))
	sb.WriteString(fmt.Sprintf("Started:   %s\n", createdAt.Format(time.RFC3339)))
	if completedAt != nil {
		sb.WriteString(fmt.Sprintf("Completed: %s\n", completedAt.Format(time.RFC3339)))
	}
	sb.WriteString(fmt.Sprintf("Ballots:   %d", len(sources)))

	for i, src := range sources {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(sources)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("\n  %s", src))
	}

	p.printBox("BATCH RUN", sb.String())
}
