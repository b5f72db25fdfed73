package state

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		call      func(s *SQLiteStore) error
		errMsg    string
		errIs     error
	}{
		{
			name: "create run insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO comparison_runs").WillReturnError(assert.AnError)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.CreateRun(ctx, RunInput{SourcePath: "a.sql"})
				return err
			},
			errMsg: "failed to create run",
			errIs:  assert.AnError,
		},
		{
			name: "record statement fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO statement_results").WillReturnError(assert.AnError)
			},
			call: func(s *SQLiteStore) error {
				return s.RecordStatement(ctx, StatementRecord{RunID: "r", Index: 2})
			},
			errMsg: "failed to record statement 3",
		},
		{
			name: "complete unknown run",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE comparison_runs").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			call: func(s *SQLiteStore) error {
				return s.CompleteRun(ctx, "r", "Equivalent", "")
			},
			errIs: ErrRunNotFound,
		},
		{
			name: "get run without rows",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM comparison_runs WHERE id").WillReturnError(sql.ErrNoRows)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.GetRun(ctx, "r")
				return err
			},
			errIs: ErrRunNotFound,
		},
		{
			name: "get run with corrupt timestamp",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "source_path", "target_path", "source_dialect", "target_dialect",
					"verdict", "message", "statement_count", "mismatch_count", "started_at", "completed_at"}).
					AddRow("r", "a", "b", "oracle", "trino", "Equivalent", "", 1, 0, "yesterday", nil)
				mock.ExpectQuery("SELECT (.+) FROM comparison_runs WHERE id").WillReturnRows(rows)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.GetRun(ctx, "r")
				return err
			},
			errMsg: "invalid started_at",
		},
		{
			name: "list runs query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM comparison_runs ORDER BY").WillReturnError(assert.AnError)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.ListRuns(ctx, 5)
				return err
			},
			errMsg: "failed to list runs",
		},
		{
			name: "get statements query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM statement_results").WillReturnError(assert.AnError)
			},
			call: func(s *SQLiteStore) error {
				_, err := s.GetStatements(ctx, "r")
				return err
			},
			errMsg: "failed to get statements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setupMock(mock)

			err = tt.call(newWithDB(db, nil))
			require.Error(t, err)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
