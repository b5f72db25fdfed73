package output

import "time"

// StatementJSON is one compared statement in JSON output.
type StatementJSON struct {
	Index       int    `json:"index"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Equal       bool   `json:"equal"`
	Explanation string `json:"explanation,omitempty"`
}

// CompareJSON is the JSON form of a comparison.
type CompareJSON struct {
	RunID         string          `json:"run_id,omitempty"`
	SourcePath    string          `json:"source_path"`
	TargetPath    string          `json:"target_path"`
	SourceDialect string          `json:"source_dialect"`
	TargetDialect string          `json:"target_dialect"`
	Verdict       string          `json:"verdict"`
	Message       string          `json:"message"`
	Statements    []StatementJSON `json:"statements"`
}

// RunJSON is a stored comparison run in JSON output.
type RunJSON struct {
	ID             string          `json:"id"`
	SourcePath     string          `json:"source_path"`
	TargetPath     string          `json:"target_path"`
	SourceDialect  string          `json:"source_dialect"`
	TargetDialect  string          `json:"target_dialect"`
	Verdict        string          `json:"verdict"`
	Message        string          `json:"message,omitempty"`
	StatementCount int             `json:"statement_count"`
	MismatchCount  int             `json:"mismatch_count"`
	StartedAt      time.Time       `json:"started_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Statements     []StatementJSON `json:"statements,omitempty"`
}

// DialectJSON describes a registered dialect.
type DialectJSON struct {
	Name          string   `json:"name"`
	Normalization string   `json:"normalization"`
	Translations  []string `json:"translations,omitempty"`
}
