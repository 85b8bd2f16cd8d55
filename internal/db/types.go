package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ballot-parser/internal/parsing"
	"github.com/jonathan/ballot-parser/internal/types"
)

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run represents a batch run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	InputDir    string     `json:"input_dir"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// StoredBallot represents a ballot record
type StoredBallot struct {
	ID         uuid.UUID            `json:"id"`
	RunID      uuid.UUID            `json:"run_id"`
	SourcePath string               `json:"source_path"`
	SourceHash string               `json:"source_hash"`
	Document   types.BallotDocument `json:"document"`
	Report     *parsing.Report      `json:"report,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}
