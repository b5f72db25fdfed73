package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/sqlequiv/pkg/equiv"
)

// timeLayout has fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `id, source_path, target_path, source_dialect, target_dialect, verdict, message,
	statement_count, mismatch_count, started_at, completed_at`

// CreateRun starts a new comparison run.
func (s *SQLiteStore) CreateRun(ctx context.Context, in RunInput) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{
		ID:            generateID(),
		SourcePath:    in.SourcePath,
		TargetPath:    in.TargetPath,
		SourceDialect: in.SourceDialect,
		TargetDialect: in.TargetDialect,
		Verdict:       VerdictRunning,
		StartedAt:     time.Now().UTC(),
	}

	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("source", in.SourcePath), slog.String("target", in.TargetPath))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comparison_runs (id, source_path, target_path, source_dialect, target_dialect, verdict, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourcePath, run.TargetPath, run.SourceDialect, run.TargetDialect, run.Verdict,
		run.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// RecordStatement stores the canonical texts of one statement pair.
func (s *SQLiteStore) RecordStatement(ctx context.Context, rec StatementRecord) error {
	if s.db == nil {
		return ErrNotOpen
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO statement_results (run_id, idx, source_text, target_text, equal, explanation)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Index, rec.SourceText, rec.TargetText, rec.Equal, rec.Explanation,
	)
	if err != nil {
		return fmt.Errorf("failed to record statement %d: %w", rec.Index+1, err)
	}
	return nil
}

// CompleteRun sets the verdict of a run and derives its counts from the
// recorded statements.
func (s *SQLiteStore) CompleteRun(ctx context.Context, id, verdict, message string) error {
	if s.db == nil {
		return ErrNotOpen
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE comparison_runs SET
			verdict = ?,
			message = ?,
			completed_at = ?,
			statement_count = (SELECT COUNT(*) FROM statement_results WHERE run_id = ?),
			mismatch_count = (SELECT COUNT(*) FROM statement_results WHERE run_id = ? AND equal = 0)
		 WHERE id = ?`,
		verdict, message, time.Now().UTC().Format(timeLayout), id, id, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM comparison_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs up to the given limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM comparison_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetStatements returns the recorded statements of a run in index order.
func (s *SQLiteStore) GetStatements(ctx context.Context, runID string) ([]StatementRecord, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, idx, source_text, target_text, equal, explanation
		 FROM statement_results WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []StatementRecord
	for rows.Next() {
		var rec StatementRecord
		if err := rows.Scan(&rec.RunID, &rec.Index, &rec.SourceText, &rec.TargetText, &rec.Equal, &rec.Explanation); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	return recs, nil
}

// RecordResult stores a finished comparison as one run.
func RecordResult(ctx context.Context, s Store, in RunInput, res *equiv.Result) (*Run, error) {
	run, err := s.CreateRun(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, st := range res.Statements {
		err := s.RecordStatement(ctx, StatementRecord{
			RunID:       run.ID,
			Index:       st.Index,
			SourceText:  st.SourceText,
			TargetText:  st.TargetText,
			Equal:       st.Equal,
			Explanation: st.Explanation,
		})
		if err != nil {
			return nil, err
		}
	}
	if err := s.CompleteRun(ctx, run.ID, res.Verdict.String(), res.Message); err != nil {
		return nil, err
	}
	return s.GetRun(ctx, run.ID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	run := &Run{}
	var startedAt string
	var completedAt sql.NullString

	err := row.Scan(&run.ID, &run.SourcePath, &run.TargetPath, &run.SourceDialect, &run.TargetDialect,
		&run.Verdict, &run.Message, &run.StatementCount, &run.MismatchCount, &startedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	if completedAt.Valid {
		t, err := time.Parse(timeLayout, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("invalid completed_at %q: %w", completedAt.String, err)
		}
		run.CompletedAt = &t
	}
	return run, nil
}
