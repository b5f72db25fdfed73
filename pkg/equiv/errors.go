package equiv

import (
	"fmt"
)

// Side names one of the two inputs of a comparison.
type Side string

// Comparison sides.
const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// ParseError reports that one side's text could not be parsed.
type ParseError struct {
	Side    Side
	Dialect string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s SQL (%s): %v", e.Side, e.Dialect, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TranspileError reports that a source statement could not be carried
// over to the target dialect. Index is 0-based.
type TranspileError struct {
	Index   int
	Message string
	Err     error
}

func (e *TranspileError) Error() string {
	return fmt.Sprintf("failed to transpile statement %d: %s", e.Index+1, e.Message)
}

func (e *TranspileError) Unwrap() error { return e.Err }

// StatementCountMismatchError reports scripts with different numbers of
// statements.
type StatementCountMismatchError struct {
	SourceDialect string
	TargetDialect string
	SourceCount   int
	TargetCount   int
}

func (e *StatementCountMismatchError) Error() string {
	return fmt.Sprintf("Mismatch in number of statements: %s has %d, %s has %d.",
		e.SourceDialect, e.SourceCount, e.TargetDialect, e.TargetCount)
}

// StatementError wraps a normalization failure with the 0-based index of
// the statement it occurred in.
type StatementError struct {
	Index int
	Side  Side
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("failed to normalize %s statement %d: %v", e.Side, e.Index+1, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }
