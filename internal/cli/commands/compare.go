package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlequiv/internal/cli/output"
	"github.com/leapstack-labs/sqlequiv/internal/loader"
	"github.com/leapstack-labs/sqlequiv/internal/state"
	"github.com/leapstack-labs/sqlequiv/pkg/equiv"
)

// CompareOptions holds flags read by the compare command itself. The
// remaining flags flow through the configuration.
type CompareOptions struct {
	Maps  []string
	Watch bool
}

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	opts := &CompareOptions{}

	cmd := &cobra.Command{
		Use:   "compare SOURCE TARGET",
		Short: "Check whether two SQL scripts are equivalent",
		Long: `Compare a source script with a target script statement by statement.

The source is transpiled to the target dialect, table names are remapped,
and both sides are normalized before comparison. Each statement pair is
printed in canonical form, followed by the verdict. The command exits
non-zero unless the scripts are equivalent.

Use "-" as a path to read a script from standard input.`,
		Example: `  # Compare an Oracle script with its Trino migration
  sqlequiv compare legacy.sql migrated.sql --mapping mapping.yaml

  # Map tables inline and report every mismatch
  sqlequiv compare a.sql b.sql --map sales=lake.default.sales --collect-all

  # Re-run whenever either file changes
  sqlequiv compare a.sql b.sql --watch`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], opts)
		},
	}

	f := cmd.Flags()
	f.String("mapping", "", "YAML file mapping source table names to target tables")
	f.StringArrayVar(&opts.Maps, "map", nil, "Map a source table as name=catalog.schema.table (repeatable)")
	f.String("source-dialect", "", "Dialect of the source script (default oracle)")
	f.String("target-dialect", "", "Dialect of the target script (default trino)")
	f.Bool("collect-all", false, "Compare every statement instead of stopping at the first mismatch")
	f.Bool("unwrap-date-parse", false, "Treat a bare date-parse call as its first argument")
	f.Bool("no-cnf", false, "Do not convert predicates to conjunctive normal form")
	f.Int("max-iterations", 0, "Bound on canonicalization passes")
	f.String("format", "", "Report format (text|markdown|json)")
	f.BoolVarP(&opts.Watch, "watch", "w", false, "Re-run the comparison when either file changes")
	f.Bool("no-history", false, "Do not record this comparison in the history database")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("source-dialect", completeDialects)
	_ = cmd.RegisterFlagCompletionFunc("target-dialect", completeDialects)

	return cmd
}

func runCompare(cmd *cobra.Command, sourcePath, targetPath string, opts *CompareOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cmp, err := cc.comparator(opts.Maps)
	if err != nil {
		return err
	}

	if opts.Watch {
		if sourcePath == "-" || targetPath == "-" {
			return errors.New("--watch cannot read from standard input")
		}
		return watchCompare(cmd.Context(), cc, cmp, sourcePath, targetPath)
	}

	res, err := cc.compareFiles(cmd.Context(), cmp, sourcePath, targetPath)
	if err != nil {
		return err
	}
	switch res.Verdict {
	case equiv.Equivalent:
		return nil
	case equiv.NotEquivalent:
		return ErrNotEquivalent
	default:
		return fmt.Errorf("comparison failed: %w", res.Err)
	}
}

func (c *CommandContext) comparator(pairs []string) (*equiv.Comparator, error) {
	opts, err := c.Cfg.EquivOptions()
	if err != nil {
		return nil, err
	}
	if opts.Mapping, err = c.mapping(pairs); err != nil {
		return nil, err
	}
	return equiv.New(opts, c.Logger)
}

// compareFiles reads both scripts, compares them, records the run and
// renders the report.
func (c *CommandContext) compareFiles(ctx context.Context, cmp *equiv.Comparator, sourcePath, targetPath string) (*equiv.Result, error) {
	pair, err := loader.ReadPair(ctx, sourcePath, targetPath)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	res := cmp.Compare(ctx, pair.Source, pair.Target)
	c.Logger.Debug("comparison finished",
		"verdict", res.Verdict.String(),
		"statements", len(res.Statements),
		"mismatches", len(res.Mismatches),
		"duration", time.Since(started))

	rep := compareReport{
		RunID:   c.record(ctx, pair, cmp.Options(), res),
		Pair:    pair,
		Options: cmp.Options(),
		Result:  res,
	}
	if err := renderCompare(c.Renderer, rep); err != nil {
		return nil, err
	}
	return res, nil
}

// record stores the run in the history database. Failures are logged and
// never fail the comparison.
func (c *CommandContext) record(ctx context.Context, pair *loader.Pair, opts equiv.Options, res *equiv.Result) string {
	if !c.Cfg.RecordHistory {
		return ""
	}
	store, err := openHistory(c.Cfg, c.Logger)
	if err != nil {
		c.Logger.Warn("comparison history unavailable", "error", err)
		return ""
	}
	defer func() { _ = store.Close() }()

	run, err := state.RecordResult(ctx, store, state.RunInput{
		SourcePath:    pair.SourcePath,
		TargetPath:    pair.TargetPath,
		SourceDialect: opts.SourceDialect,
		TargetDialect: opts.TargetDialect,
	}, res)
	if err != nil {
		c.Logger.Warn("failed to record comparison", "error", err)
		return ""
	}
	return run.ID
}

func completeDialects(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return dialectNames(), cobra.ShellCompDirectiveNoFileComp
}

// verdictStyle picks the style for a verdict line.
func verdictStyle(r *output.Renderer, v equiv.Verdict) func(...string) string {
	switch v {
	case equiv.Equivalent:
		return r.Styles().StatusSuccess.Render
	case equiv.NotEquivalent:
		return r.Styles().StatusFailed.Render
	default:
		return r.Styles().Error.Render
	}
}
