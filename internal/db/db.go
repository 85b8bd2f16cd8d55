// Package db provides PostgreSQL persistence for batch runs and parsed ballots.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/ballot-parser/internal/assembly"
	"github.com/jonathan/ballot-parser/internal/ingestion"
	"github.com/jonathan/ballot-parser/internal/parsing"
	"github.com/jonathan/ballot-parser/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the ballot_runs and ballots tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// CreateRun creates a new batch run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, inputDir string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ballot_runs (input_dir, status)
		 VALUES ($1, $2)
		 RETURNING id`,
		inputDir, RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a batch run as finished with the given status
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE ballot_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

// GetRun retrieves a batch run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, input_dir, status, created_at, completed_at
		 FROM ballot_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.InputDir, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// SaveBallot stores a parsed ballot for a run, replacing any earlier copy of the same source
func (db *DB) SaveBallot(ctx context.Context, runID uuid.UUID, source ingestion.SourceInfo, doc *types.BallotDocument, report *parsing.Report) error {
	if doc == nil {
		return fmt.Errorf("cannot save nil ballot for %s", source.Path)
	}

	docJSON, reportJSON, err := encodeBallot(doc, report)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO ballots (run_id, source_path, source_hash, location, clustered_precinct_id, document, report)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (run_id, source_path) DO UPDATE SET
		     source_hash = $3, location = $4, clustered_precinct_id = $5,
		     document = $6, report = $7, created_at = NOW()`,
		runID, source.Path, source.Hash, doc.Location, doc.ClusteredPrecinctID, docJSON, reportJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save ballot %s: %w", source.Path, err)
	}
	return nil
}

// encodeBallot encodes the document exactly as the JSON writer does, plus the optional report
func encodeBallot(doc *types.BallotDocument, report *parsing.Report) (docJSON, reportJSON []byte, err error) {
	docJSON, err = assembly.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal ballot: %w", err)
	}

	if report != nil {
		reportJSON, err = json.Marshal(report)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal report: %w", err)
		}
	}
	return docJSON, reportJSON, nil
}

// GetBallot retrieves a stored ballot by run ID and source path. Returns nil if none exists.
func (db *DB) GetBallot(ctx context.Context, runID uuid.UUID, sourcePath string) (*StoredBallot, error) {
	var b StoredBallot
	var docJSON, reportJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, source_path, source_hash, document, report, created_at
		 FROM ballots WHERE run_id = $1 AND source_path = $2`,
		runID, sourcePath,
	).Scan(&b.ID, &b.RunID, &b.SourcePath, &b.SourceHash, &docJSON, &reportJSON, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ballot %s: %w", sourcePath, err)
	}

	if err := json.Unmarshal(docJSON, &b.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ballot %s: %w", sourcePath, err)
	}
	if len(reportJSON) > 0 {
		b.Report = &parsing.Report{}
		if err := json.Unmarshal(reportJSON, b.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report %s: %w", sourcePath, err)
		}
	}
	return &b, nil
}

// ListBallots retrieves the source paths stored for a run, in path order
func (db *DB) ListBallots(ctx context.Context, runID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT source_path FROM ballots WHERE run_id = $1 ORDER BY source_path`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballots: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
