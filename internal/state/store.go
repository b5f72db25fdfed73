// Package state records comparison runs in a SQLite history database.
package state

import (
	"context"
	"time"
)

// VerdictRunning marks a run that has not completed.
const VerdictRunning = "running"

// Run is one recorded comparison of a source and a target script.
type Run struct {
	ID             string
	SourcePath     string
	TargetPath     string
	SourceDialect  string
	TargetDialect  string
	Verdict        string
	Message        string
	StatementCount int
	MismatchCount  int
	StartedAt      time.Time
	CompletedAt    *time.Time
}

// RunInput describes a comparison about to be recorded.
type RunInput struct {
	SourcePath    string
	TargetPath    string
	SourceDialect string
	TargetDialect string
}

// StatementRecord is the canonical form of one compared statement pair.
// Index is 0-based.
type StatementRecord struct {
	RunID       string
	Index       int
	SourceText  string
	TargetText  string
	Equal       bool
	Explanation string
}

// Store persists comparison history.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	CreateRun(ctx context.Context, in RunInput) (*Run, error)
	RecordStatement(ctx context.Context, rec StatementRecord) error
	CompleteRun(ctx context.Context, id, verdict, message string) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	GetStatements(ctx context.Context, runID string) ([]StatementRecord, error)
}
