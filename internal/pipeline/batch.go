package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ballot-parser/internal/observability"
)

// Progress steps
const (
	StepDiscovered = "discovered"
	StepDocument   = "document"
	StepCompleted  = "completed"
)

// DefaultExtension is the input file extension processed when none is given.
const DefaultExtension = ".pdf"

// ProgressEvent represents a progress update during a batch run
type ProgressEvent struct {
	Step    string `json:"step"`
	File    string `json:"file,omitempty"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when batch progress occurs
type ProgressCallback func(event ProgressEvent)

// Sink receives every successfully written document, e.g. for persistence.
type Sink interface {
	Save(ctx context.Context, result *Result) error
}

// BatchOptions holds configuration for a batch run
type BatchOptions struct {
	InputDir  string
	OutputDir string
	Extension string
	// Jobs bounds concurrent documents. Values below 2 process documents one at a time in order.
	Jobs       int
	RunID      uuid.UUID
	Verbose    bool
	Out        io.Writer
	OnProgress ProgressCallback
	Sink       Sink
}

// FileSummary describes one processed document.
type FileSummary struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Positions int    `json:"positions"`
	Dropped   int    `json:"dropped"`
}

// BatchSummary totals a finished batch run.
type BatchSummary struct {
	RunID     uuid.UUID     `json:"run_id"`
	Processed int           `json:"processed"`
	Positions int           `json:"positions"`
	Dropped   int           `json:"dropped"`
	Files     []FileSummary `json:"files"`
}

// BatchProcessor drives a Processor over every matching file in a directory.
type BatchProcessor struct {
	processor *Processor
	opts      BatchOptions
	printer   *observability.Printer

	mu   sync.Mutex
	done int
}

// NewBatchProcessor creates a BatchProcessor, filling unset options with defaults.
func NewBatchProcessor(processor *Processor, opts BatchOptions) *BatchProcessor {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.RunID == uuid.Nil {
		opts.RunID = uuid.New()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &BatchProcessor{
		processor: processor,
		opts:      opts,
		printer:   observability.NewPrinter(opts.Out),
	}
}

// ListInputs returns the files in dir whose names end in ext, in lexical order.
func ListInputs(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input directory %s: %w", dir, err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, entry.Name()))
	}
	return inputs, nil
}

// OutputPath returns the output file for inPath: its stem with a .json extension inside outDir.
func OutputPath(outDir, inPath string) string {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".json")
}

// Run processes every input and stops at the first failure. Files already written are kept.
func (b *BatchProcessor) Run(ctx context.Context) (*BatchSummary, error) {
	inputs, err := ListInputs(b.opts.InputDir, b.opts.Extension)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(b.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", b.opts.OutputDir, err)
	}

	b.emit(ProgressEvent{
		Step:    StepDiscovered,
		Total:   len(inputs),
		Message: fmt.Sprintf("Found %d %s files in %s", len(inputs), b.opts.Extension, b.opts.InputDir),
	})

	files := make([]FileSummary, len(inputs))
	if b.opts.Jobs > 1 {
		err = b.runConcurrent(ctx, inputs, files)
	} else {
		err = b.runSequential(ctx, inputs, files)
	}
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{RunID: b.opts.RunID, Files: files}
	for _, f := range files {
		summary.Processed++
		summary.Positions += f.Positions
		summary.Dropped += f.Dropped
	}

	b.emit(ProgressEvent{
		Step:    StepCompleted,
		Done:    summary.Processed,
		Total:   len(inputs),
		Message: fmt.Sprintf("Wrote %d ballot documents to %s", summary.Processed, b.opts.OutputDir),
		Content: summary,
	})

	return summary, nil
}

func (b *BatchProcessor) runSequential(ctx context.Context, inputs []string, files []FileSummary) error {
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary, err := b.processOne(ctx, in, len(inputs))
		if err != nil {
			return err
		}
		files[i] = summary
	}
	return nil
}

func (b *BatchProcessor) runConcurrent(ctx context.Context, inputs []string, files []FileSummary) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Jobs)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := b.processOne(gctx, in, len(inputs))
			if err != nil {
				return err
			}
			files[i] = summary
			return nil
		})
	}
	return g.Wait()
}

func (b *BatchProcessor) processOne(ctx context.Context, in string, total int) (FileSummary, error) {
	out := OutputPath(b.opts.OutputDir, in)

	result, err := b.processor.ProcessFile(ctx, in, out)
	if err != nil {
		return FileSummary{}, fmt.Errorf("processing %s failed: %w", in, err)
	}

	if b.opts.Sink != nil {
		if err := b.opts.Sink.Save(ctx, result); err != nil {
			return FileSummary{}, fmt.Errorf("saving %s failed: %w", in, err)
		}
	}

	summary := FileSummary{
		Input:     in,
		Output:    out,
		Positions: len(result.Document.Positions),
		Dropped:   len(result.Report.DroppedSections),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.done++

	if b.opts.Verbose {
		b.printer.PrintBallot(result.Document)
		b.printer.PrintReport(result.Report)
	}

	b.emitLocked(ProgressEvent{
		Step:    StepDocument,
		File:    in,
		Done:    b.done,
		Total:   total,
		Message: fmt.Sprintf("Parsed %s: %d positions", filepath.Base(in), summary.Positions),
		Content: result.Report,
	})

	return summary, nil
}

// emit calls the progress callback if configured
func (b *BatchProcessor) emit(event ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emitLocked(event)
}

func (b *BatchProcessor) emitLocked(event ProgressEvent) {
	if b.opts.OnProgress == nil {
		return
	}
	event.RunID = b.opts.RunID.String()
	b.opts.OnProgress(event)
}
