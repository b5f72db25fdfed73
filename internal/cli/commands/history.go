package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlequiv/internal/cli/output"
	"github.com/leapstack-labs/sqlequiv/internal/state"
)

const defaultHistoryLimit = 20

// NewHistoryCommand creates the history command and its show subcommand.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded comparison runs",
		Long: `List comparison runs recorded by compare, newest first.
Runs are stored in the database at history_path.`,
		Example: `  sqlequiv history --limit 5
  sqlequiv history show 3f6c2a9e-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			store, err := openHistory(cc.Cfg, cc.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderRuns(cc.Renderer, runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of runs to list")

	cmd.AddCommand(newHistoryShowCommand())
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show one recorded comparison with its statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			store, err := openHistory(cc.Cfg, cc.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			stmts, err := store.GetStatements(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			return renderRun(cc.Renderer, run, stmts)
		},
	}
}

func renderRuns(r *output.Renderer, runs []*state.Run) error {
	if r.EffectiveMode() == output.ModeJSON {
		out := make([]output.RunJSON, 0, len(runs))
		for _, run := range runs {
			out = append(out, runJSON(run, nil))
		}
		return r.JSON(out)
	}

	if len(runs) == 0 {
		r.Muted("No comparisons recorded.")
		return nil
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Comparison History"))
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.SourcePath + " → " + run.TargetPath,
			run.Verdict,
			fmt.Sprintf("%d/%d", run.MismatchCount, run.StatementCount),
		})
	}
	r.Table([]string{"ID", "Started", "Files", "Verdict", "Mismatches"}, rows)
	return nil
}

func renderRun(r *output.Renderer, run *state.Run, stmts []state.StatementRecord) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(runJSON(run, stmts))

	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Run "+run.ID))
		r.Println(output.FormatKeyValue("Source", fmt.Sprintf("`%s` (%s)", run.SourcePath, run.SourceDialect)) + "  ")
		r.Println(output.FormatKeyValue("Target", fmt.Sprintf("`%s` (%s)", run.TargetPath, run.TargetDialect)) + "  ")
		r.Println(output.FormatKeyValue("Started", run.StartedAt.Local().Format(time.DateTime)) + "  ")
		r.Println(output.FormatKeyValue("Verdict", run.Verdict) + "  ")
		r.Println(run.Message)
		r.Println("")
		for _, st := range stmts {
			r.Println(output.FormatHeader(2, fmt.Sprintf("Statement #%d (%s)", st.Index+1, equalWord(st.Equal))))
			r.Println(output.FormatCodeBlock("sql", st.SourceText))
			r.Println(output.FormatCodeBlock("sql", st.TargetText))
			if st.Explanation != "" {
				r.Println(output.FormatCodeBlock("diff", st.Explanation))
			}
		}
		return nil
	}

	styles := r.Styles()
	r.Println(styles.Header.Render("Run " + run.ID))
	r.Printf("  %s: %s (%s)\n", styles.Bold.Render("Source"), run.SourcePath, run.SourceDialect)
	r.Printf("  %s: %s (%s)\n", styles.Bold.Render("Target"), run.TargetPath, run.TargetDialect)
	r.Printf("  %s: %s\n", styles.Bold.Render("Started"), run.StartedAt.Local().Format(time.DateTime))
	if run.CompletedAt != nil {
		r.Printf("  %s: %s\n", styles.Bold.Render("Duration"), run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	r.Printf("  %s: %s\n", styles.Bold.Render("Verdict"), run.Verdict)
	if run.Message != "" {
		r.Println("  " + run.Message)
	}
	r.Println("")
	for _, st := range stmts {
		r.StatusLine(fmt.Sprintf("Statement #%d", st.Index+1), st.Equal, "")
		r.Println(styles.SQL.Render(st.SourceText))
		r.Println(styles.SQL.Render(st.TargetText))
		if st.Explanation != "" {
			printDiff(r, st.Explanation)
		}
		r.Println("")
	}
	return nil
}

func runJSON(run *state.Run, stmts []state.StatementRecord) output.RunJSON {
	out := output.RunJSON{
		ID:             run.ID,
		SourcePath:     run.SourcePath,
		TargetPath:     run.TargetPath,
		SourceDialect:  run.SourceDialect,
		TargetDialect:  run.TargetDialect,
		Verdict:        run.Verdict,
		Message:        run.Message,
		StatementCount: run.StatementCount,
		MismatchCount:  run.MismatchCount,
		StartedAt:      run.StartedAt,
		CompletedAt:    run.CompletedAt,
	}
	for _, st := range stmts {
		out.Statements = append(out.Statements, output.StatementJSON{
			Index:       st.Index,
			Source:      st.SourceText,
			Target:      st.TargetText,
			Equal:       st.Equal,
			Explanation: st.Explanation,
		})
	}
	return out
}

func equalWord(equal bool) string {
	if equal {
		return "equal"
	}
	return "differs"
}
