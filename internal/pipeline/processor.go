// Package pipeline turns ballot face templates into ballot documents, one file or a whole directory at a time.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/ballot-parser/internal/assembly"
	"github.com/jonathan/ballot-parser/internal/ingestion"
	"github.com/jonathan/ballot-parser/internal/parsing"
	"github.com/jonathan/ballot-parser/internal/reference"
	"github.com/jonathan/ballot-parser/internal/schemas"
	"github.com/jonathan/ballot-parser/internal/types"
)

// Processor runs the single-document pipeline. Rosters are shared read-only across documents.
type Processor struct {
	Extractor      ingestion.Extractor
	Rosters        *reference.Rosters
	ElectionDate   string
	ValidateOutput bool
}

// NewProcessor creates a Processor for the given extractor and rosters.
func NewProcessor(extractor ingestion.Extractor, rosters *reference.Rosters) *Processor {
	return &Processor{
		Extractor:    extractor,
		Rosters:      rosters,
		ElectionDate: types.ElectionDate,
	}
}

// Result is the outcome of processing one document.
type Result struct {
	Source     *ingestion.SourceInfo
	Document   *types.BallotDocument
	Report     *parsing.Report
	OutputPath string
}

// Process extracts, parses and assembles one document without writing it.
func (p *Processor) Process(ctx context.Context, inPath string) (*Result, error) {
	if p.Extractor == nil {
		return nil, fmt.Errorf("processor has no extractor")
	}
	if p.Rosters == nil {
		return nil, fmt.Errorf("processor has no reference rosters")
	}

	text, source, err := ingestion.IngestFromFile(ctx, p.Extractor, inPath)
	if err != nil {
		return nil, fmt.Errorf("ingestion of %s failed: %w", inPath, err)
	}

	meta := ingestion.ExtractMetadata(text)
	discovered, report := parsing.ParsePositions(text)
	doc := assembly.Assemble(p.ElectionDate, meta, p.Rosters, discovered)

	return &Result{
		Source:   source,
		Document: doc,
		Report:   report,
	}, nil
}

// ProcessFile processes one document and writes it to outPath, validating the written file when enabled.
func (p *Processor) ProcessFile(ctx context.Context, inPath, outPath string) (*Result, error) {
	result, err := p.Process(ctx, inPath)
	if err != nil {
		return nil, err
	}

	if err := assembly.WriteJSON(outPath, result.Document); err != nil {
		return nil, err
	}
	result.OutputPath = outPath

	if p.ValidateOutput {
		if err := schemas.ValidateBallotFile(outPath); err != nil {
			return nil, fmt.Errorf("output %s failed schema validation: %w", outPath, err)
		}
	}

	return result, nil
}
