package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlequiv/internal/cli/output"
	"github.com/leapstack-labs/sqlequiv/internal/loader"
	"github.com/leapstack-labs/sqlequiv/pkg/equiv"
)

const summaryWidth = 48

type compareReport struct {
	RunID   string
	Pair    *loader.Pair
	Options equiv.Options
	Result  *equiv.Result
}

func renderCompare(r *output.Renderer, rep compareReport) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(compareJSON(rep))
	case output.ModeMarkdown:
		renderCompareMarkdown(r, rep)
	default:
		renderCompareText(r, rep)
	}
	return nil
}

func renderCompareText(r *output.Renderer, rep compareReport) {
	styles := r.Styles()
	res := rep.Result

	for _, st := range res.Statements {
		r.Println(styles.Header2.Render(fmt.Sprintf("--- Comparing Statement #%d ---", st.Index+1)))
		r.Println(styles.Bold.Render(fmt.Sprintf("Source (%s):", rep.Options.SourceDialect)))
		r.Println(styles.SQL.Render(st.SourceText))
		r.Println(styles.Bold.Render(fmt.Sprintf("Target (%s):", rep.Options.TargetDialect)))
		r.Println(styles.SQL.Render(st.TargetText))
		if !st.Equal {
			printDiff(r, st.Explanation)
		}
		r.Println("")
	}

	if len(res.Statements) > 0 {
		r.Table(summaryHeaders, summaryRows(res))
		r.Println("")
	}

	r.Printf("%s %s\n", styles.Bold.Render("Verdict:"), verdictStyle(r, res.Verdict)(res.Verdict.String()))
	r.Println(res.Message)
	if rep.RunID != "" {
		r.Muted("run " + rep.RunID)
	}
}

func printDiff(r *output.Renderer, diff string) {
	styles := r.Styles()
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			r.Println(styles.Bold.Render(line))
		case strings.HasPrefix(line, "+"):
			r.Println(styles.Success.Render(line))
		case strings.HasPrefix(line, "-"):
			r.Println(styles.Error.Render(line))
		case strings.HasPrefix(line, "@@"):
			r.Println(styles.Info.Render(line))
		default:
			r.Println(line)
		}
	}
}

func renderCompareMarkdown(r *output.Renderer, rep compareReport) {
	res := rep.Result

	r.Println(output.FormatHeader(1, "SQL Comparison"))
	r.Println(output.FormatKeyValue("Source", fmt.Sprintf("`%s` (%s)", rep.Pair.SourcePath, rep.Options.SourceDialect)) + "  ")
	r.Println(output.FormatKeyValue("Target", fmt.Sprintf("`%s` (%s)", rep.Pair.TargetPath, rep.Options.TargetDialect)))
	r.Println("")

	for _, st := range res.Statements {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Comparing Statement #%d", st.Index+1)))
		r.Println(output.FormatCodeBlock("sql", st.SourceText))
		r.Println(output.FormatCodeBlock("sql", st.TargetText))
		if !st.Equal && st.Explanation != "" {
			r.Println(output.FormatCodeBlock("diff", st.Explanation))
		}
	}

	if len(res.Statements) > 0 {
		r.Println(output.FormatHeader(2, "Summary"))
		r.Table(summaryHeaders, summaryRows(res))
		r.Println("")
	}

	r.Println(output.FormatKeyValue("Verdict", res.Verdict.String()) + "  ")
	r.Println(res.Message)
	if rep.RunID != "" {
		r.Println("")
		r.Printf("Recorded as run `%s`.\n", rep.RunID)
	}
}

var summaryHeaders = []string{"#", "Result", "Source", "Target"}

func summaryRows(res *equiv.Result) [][]string {
	rows := make([][]string, 0, len(res.Statements))
	for _, st := range res.Statements {
		status := "equal"
		if !st.Equal {
			status = "differs"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", st.Index+1),
			status,
			truncateOneLine(st.SourceText, summaryWidth),
			truncateOneLine(st.TargetText, summaryWidth),
		})
	}
	return rows
}

func compareJSON(rep compareReport) output.CompareJSON {
	res := rep.Result
	out := output.CompareJSON{
		RunID:         rep.RunID,
		SourcePath:    rep.Pair.SourcePath,
		TargetPath:    rep.Pair.TargetPath,
		SourceDialect: rep.Options.SourceDialect,
		TargetDialect: rep.Options.TargetDialect,
		Verdict:       res.Verdict.String(),
		Message:       res.Message,
		Statements:    make([]output.StatementJSON, 0, len(res.Statements)),
	}
	for _, st := range res.Statements {
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

// truncateOneLine collapses whitespace and shortens s to maxLen runes.
func truncateOneLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
