package equiv

import "fmt"

// Verdict is the overall outcome of a comparison.
type Verdict int

// Verdicts.
const (
	Equivalent Verdict = iota
	NotEquivalent
	Error
)

func (v Verdict) String() string {
	switch v {
	case Equivalent:
		return "Equivalent"
	case NotEquivalent:
		return "Not Equivalent"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Mode controls what happens after the first differing statement.
type Mode int

// Comparison modes.
const (
	// ShortCircuit stops at the first differing statement.
	ShortCircuit Mode = iota
	// CollectAll compares every statement and records each mismatch.
	CollectAll
)

func (m Mode) String() string {
	if m == CollectAll {
		return "collect-all"
	}
	return "short-circuit"
}

// ParseMode parses "short-circuit" or "collect-all".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "short-circuit":
		return ShortCircuit, nil
	case "collect-all":
		return CollectAll, nil
	}
	return ShortCircuit, fmt.Errorf("unknown comparison mode %q (want short-circuit or collect-all)", s)
}

// StatementResult is the canonical form of one statement pair.
// Index is 0-based.
type StatementResult struct {
	Index      int
	SourceText string
	TargetText string
	Equal      bool
	// Explanation is a unified diff of the pretty-printed canonical texts,
	// set only when Equal is false.
	Explanation string
}

// Mismatch identifies a differing statement pair.
type Mismatch struct {
	Index      int
	SourceText string
	TargetText string
}

// Result is the outcome of Compare.
type Result struct {
	Verdict    Verdict
	Statements []StatementResult
	Mismatches []Mismatch
	Message    string
	Err        error
}

// Equivalent reports whether every statement pair matched.
func (r *Result) Equivalent() bool {
	return r.Verdict == Equivalent
}

// Mismatch returns the first differing statement pair, if any.
func (r *Result) Mismatch() (Mismatch, bool) {
	if len(r.Mismatches) == 0 {
		return Mismatch{}, false
	}
	return r.Mismatches[0], true
}

func errorResult(err error, statements []StatementResult) *Result {
	return &Result{Verdict: Error, Statements: statements, Message: err.Error(), Err: err}
}
