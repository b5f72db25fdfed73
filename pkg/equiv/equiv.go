// Package equiv decides whether two SQL scripts written for different
// dialects are semantically equivalent.
//
// Both scripts are parsed, the source side is transpiled into the target
// dialect, and each statement pair is normalized to a canonical text that
// is compared for exact equality.
package equiv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/format"
	"github.com/leapstack-labs/sqlequiv/pkg/normalize"
	"github.com/leapstack-labs/sqlequiv/pkg/parser"
	"github.com/leapstack-labs/sqlequiv/pkg/transpile"

	// Register the built-in dialects.
	_ "github.com/leapstack-labs/sqlequiv/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlequiv/pkg/dialects/oracle"
	_ "github.com/leapstack-labs/sqlequiv/pkg/dialects/trino"
)

// Messages reported for the non-error verdicts.
const (
	MessageEquivalent = "All SQL statements appear to be semantically equivalent."
	messageMismatch   = "SQL statements at index %d do not match after normalization."
	messageMismatches = "%d of %d SQL statements do not match after normalization (first at index %d)."
)

// Options configures a Comparator.
type Options struct {
	// SourceDialect is the dialect of the source text (default oracle).
	SourceDialect string
	// TargetDialect is the dialect of the target text (default trino).
	TargetDialect string
	// Mapping renames source tables before comparison. It may be nil.
	Mapping *normalize.Mapping
	Mode    Mode
	// UnwrapDateParse enables rewriting a bare date-parse call to its
	// first argument.
	UnwrapDateParse bool
	// CNF converts predicates to conjunctive normal form.
	CNF bool
	// MaxIterations bounds the canonicalization fixpoint.
	MaxIterations int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SourceDialect: "oracle",
		TargetDialect: "trino",
		Mode:          ShortCircuit,
		CNF:           true,
		MaxIterations: normalize.DefaultMaxIterations,
	}
}

// Comparator compares source and target scripts. It holds no per-call
// state and is safe for concurrent use.
type Comparator struct {
	opts   Options
	source *dialect.Dialect
	target *dialect.Dialect
	// Both sides are normalized in the target dialect once the source has
	// been transpiled.
	pipeline *normalize.Pipeline
	logger   *slog.Logger
}

// New creates a Comparator. Empty dialect names and a non-positive
// MaxIterations take their DefaultOptions values.
func New(opts Options, logger *slog.Logger) (*Comparator, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	defaults := DefaultOptions()
	if opts.SourceDialect == "" {
		opts.SourceDialect = defaults.SourceDialect
	}
	if opts.TargetDialect == "" {
		opts.TargetDialect = defaults.TargetDialect
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaults.MaxIterations
	}

	source, err := dialect.Lookup(opts.SourceDialect)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source dialect: %w", err)
	}
	target, err := dialect.Lookup(opts.TargetDialect)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target dialect: %w", err)
	}
	if _, ok := transpile.Lookup(source.Name, target.Name); !ok {
		return nil, &transpile.Error{From: source.Name, To: target.Name, Message: "no translator registered"}
	}

	canon := normalize.NewCanonicalizer(target,
		normalize.WithBareDateParseUnwrap(opts.UnwrapDateParse),
		normalize.WithMaxIterations(opts.MaxIterations),
		normalize.WithLogger(logger),
	)

	return &Comparator{
		opts:     opts,
		source:   source,
		target:   target,
		pipeline: normalize.NewPipeline(target, canon, normalize.WithCNF(opts.CNF)),
		logger:   logger,
	}, nil
}

// Options returns the effective options.
func (c *Comparator) Options() Options {
	return c.opts
}

// Compare parses both scripts and compares them statement by statement.
// It never returns nil; failures are reported with the Error verdict.
func (c *Comparator) Compare(ctx context.Context, sourceText, targetText string) *Result {
	if err := ctx.Err(); err != nil {
		return errorResult(err, nil)
	}

	sources, err := parser.Parse(sourceText, c.source)
	if err != nil {
		return errorResult(&ParseError{Side: SideSource, Dialect: c.source.Name, Err: err}, nil)
	}
	targets, err := parser.Parse(targetText, c.target)
	if err != nil {
		return errorResult(&ParseError{Side: SideTarget, Dialect: c.target.Name, Err: err}, nil)
	}

	if len(sources) != len(targets) {
		return errorResult(&StatementCountMismatchError{
			SourceDialect: c.source.Name,
			TargetDialect: c.target.Name,
			SourceCount:   len(sources),
			TargetCount:   len(targets),
		}, nil)
	}

	c.logger.Debug("comparing scripts",
		"statements", len(sources),
		"source_dialect", c.source.Name,
		"target_dialect", c.target.Name,
		"mode", c.opts.Mode.String())

	result := &Result{Statements: make([]StatementResult, 0, len(sources))}
	for i := range sources {
		if err := ctx.Err(); err != nil {
			return errorResult(err, result.Statements)
		}

		sr, err := c.compareStatement(i, sources[i], targets[i])
		if err != nil {
			c.logger.Debug("statement failed", "index", i+1, "error", err)
			return errorResult(err, result.Statements)
		}
		result.Statements = append(result.Statements, sr)
		if sr.Equal {
			continue
		}

		c.logger.Debug("statement mismatch", "index", i+1)
		result.Mismatches = append(result.Mismatches, Mismatch{Index: i, SourceText: sr.SourceText, TargetText: sr.TargetText})
		if c.opts.Mode == ShortCircuit {
			break
		}
	}

	switch n := len(result.Mismatches); {
	case n == 0:
		result.Verdict = Equivalent
		result.Message = MessageEquivalent
	case n == 1:
		result.Verdict = NotEquivalent
		result.Message = fmt.Sprintf(messageMismatch, result.Mismatches[0].Index+1)
	default:
		result.Verdict = NotEquivalent
		result.Message = fmt.Sprintf(messageMismatches, n, len(sources), result.Mismatches[0].Index+1)
	}
	return result
}

func (c *Comparator) compareStatement(i int, source, target core.Stmt) (StatementResult, error) {
	source, err := c.carryOver(i, source)
	if err != nil {
		return StatementResult{}, err
	}

	src, err := c.pipeline.Run(source, c.opts.Mapping)
	if err != nil {
		return StatementResult{}, &StatementError{Index: i, Side: SideSource, Err: err}
	}
	tgt, err := c.pipeline.Run(target, nil)
	if err != nil {
		return StatementResult{}, &StatementError{Index: i, Side: SideTarget, Err: err}
	}

	sr := StatementResult{
		Index:      i,
		SourceText: format.Format(src, c.target),
		TargetText: format.Format(tgt, c.target),
	}
	sr.Equal = sr.SourceText == sr.TargetText
	if !sr.Equal {
		sr.Explanation = c.explain(src, tgt)
	}
	return sr, nil
}

// carryOver transpiles a source statement into the target dialect and
// parses the emitted text back, so that both sides are trees the target
// dialect itself produced.
func (c *Comparator) carryOver(i int, stmt core.Stmt) (core.Stmt, error) {
	if c.source.Name == c.target.Name {
		return stmt, nil
	}

	text, err := transpile.Transpile(stmt, c.source, c.target)
	if err != nil {
		return nil, &TranspileError{Index: i, Message: err.Error(), Err: err}
	}

	stmts, err := parser.Parse(text, c.target)
	if err != nil {
		return nil, &TranspileError{Index: i, Message: fmt.Sprintf("transpiled text does not parse as %s: %v", c.target.Name, err), Err: err}
	}
	if len(stmts) != 1 {
		return nil, &TranspileError{Index: i, Message: fmt.Sprintf("transpiled text has %d statements", len(stmts))}
	}
	return stmts[0], nil
}

func (c *Comparator) explain(src, tgt core.Stmt) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(format.Format(src, c.target, format.WithPretty()) + "\n"),
		B:        difflib.SplitLines(format.Format(tgt, c.target, format.WithPretty()) + "\n"),
		FromFile: string(SideSource) + " (" + c.source.Name + ")",
		ToFile:   string(SideTarget) + " (" + c.target.Name + ")",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err.Error()
	}
	return text
}
