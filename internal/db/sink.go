package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/ballot-parser/internal/ingestion"
	"github.com/jonathan/ballot-parser/internal/parsing"
	"github.com/jonathan/ballot-parser/internal/pipeline"
	"github.com/jonathan/ballot-parser/internal/types"
)

// BallotStore is the subset of DB used by RunSink.
type BallotStore interface {
	SaveBallot(ctx context.Context, runID uuid.UUID, source ingestion.SourceInfo, doc *types.BallotDocument, report *parsing.Report) error
}

// RunSink stores every document of a batch run under one run ID.
type RunSink struct {
	Store BallotStore
	RunID uuid.UUID
}

var _ pipeline.Sink = (*RunSink)(nil)

// NewRunSink creates a RunSink for runID.
func NewRunSink(store BallotStore, runID uuid.UUID) *RunSink {
	return &RunSink{Store: store, RunID: runID}
}

// Save implements pipeline.Sink.
func (s *RunSink) Save(ctx context.Context, result *pipeline.Result) error {
	if result == nil || result.Source == nil {
		return fmt.Errorf("result has no source information")
	}
	return s.Store.SaveBallot(ctx, s.RunID, *result.Source, result.Document, result.Report)
}
