package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlequiv/internal/cli/config"
	"github.com/leapstack-labs/sqlequiv/internal/cli/output"
	clitest "github.com/leapstack-labs/sqlequiv/internal/cli/testutil"
	"github.com/leapstack-labs/sqlequiv/internal/testutil"
)

// runCommand executes cmd on its own, with history in a temporary
// database.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Setenv("SQLEQUIV_HISTORY_PATH", filepath.Join(t.TempDir(), "history.db"))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSQL(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), name, content)
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewCompareCommand(), "compare SOURCE TARGET", []string{
			"mapping", "map", "source-dialect", "target-dialect", "collect-all",
			"unwrap-date-parse", "no-cnf", "max-iterations", "format", "watch", "no-history",
		}},
		{NewTranspileCommand(), "transpile FILE", []string{"source-dialect", "target-dialect", "pretty"}},
		{NewParseCommand(), "parse FILE", []string{"dialect", "dump"}},
		{NewNormalizeCommand(), "normalize FILE", []string{"dialect", "mapping", "map", "no-cnf", "pretty"}},
		{NewHistoryCommand(), "history", []string{"limit"}},
		{NewDialectsCommand(), "dialects", nil},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestCompareCommand(t *testing.T) {
	oracle := writeSQL(t, "oracle.sql", "-- legacy\nSELECT NVL(a, 0) FROM sales s WHERE ROWNUM <= 5;\nSELECT SYSDATE FROM dual;\n")
	trino := writeSQL(t, "trino.sql", "SELECT coalesce(a, 0) FROM lake.default.sales AS s LIMIT 5;\nSELECT current_timestamp;\n")

	t.Run("equivalent text report", func(t *testing.T) {
		out, err := runCommand(t, NewCompareCommand(), oracle, trino, "--map", "sales=lake.default.sales", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "--- Comparing Statement #1 ---")
		assert.Contains(t, out, "--- Comparing Statement #2 ---")
		assert.Contains(t, out, "COALESCE(a, 0)")
		assert.Contains(t, out, "lake.default.sales")
		assert.Contains(t, out, "Verdict: Equivalent")
		assert.Contains(t, out, "All SQL statements appear to be semantically equivalent.")
	})

	t.Run("missing mapping is not equivalent", func(t *testing.T) {
		out, err := runCommand(t, NewCompareCommand(), oracle, trino, "--format", "markdown", "--no-history")
		require.ErrorIs(t, err, ErrNotEquivalent)
		assert.Contains(t, out, "## Comparing Statement #1")
		assert.Contains(t, out, "```diff")
		assert.Contains(t, out, "**Verdict:** Not Equivalent")
		assert.Contains(t, out, "SQL statements at index 1 do not match after normalization.")
		assert.NotContains(t, out, "Comparing Statement #2")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCommand(t, NewCompareCommand(), oracle, trino, "--map", "sales=lake.default.sales", "--format", "json")
		require.NoError(t, err)

		var got output.CompareJSON
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "Equivalent", got.Verdict)
		assert.Equal(t, "oracle", got.SourceDialect)
		assert.NotEmpty(t, got.RunID)
		require.Len(t, got.Statements, 2)
		assert.True(t, got.Statements[1].Equal)
	})

	t.Run("statement count mismatch", func(t *testing.T) {
		one := writeSQL(t, "one.sql", "SELECT 1 FROM dual")
		out, err := runCommand(t, NewCompareCommand(), oracle, one, "--format", "text", "--no-history")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Mismatch in number of statements: oracle has 2, trino has 1.")
		assert.Contains(t, out, "Verdict: Error")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCommand(t, NewCompareCommand(), oracle, filepath.Join(t.TempDir(), "none.sql"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("bad map pair", func(t *testing.T) {
		_, err := runCommand(t, NewCompareCommand(), oracle, trino, "--map", "sales")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
	})

	t.Run("watch rejects stdin", func(t *testing.T) {
		_, err := runCommand(t, NewCompareCommand(), "-", trino, "--watch")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "standard input")
	})
}

func TestTranspileCommand(t *testing.T) {
	src := writeSQL(t, "legacy.sql", "SELECT NVL(a, 0) FROM emp WHERE ROWNUM <= 5;\nSELECT 1 FROM dual")

	out, err := runCommand(t, NewTranspileCommand(), src)
	require.NoError(t, err)
	assert.Equal(t, "SELECT COALESCE(A, 0) FROM EMP LIMIT 5;\n\nSELECT 1;\n", out)

	bad := writeSQL(t, "bad.sql", "SELECT a FROM t, u WHERE t.id = u.id(+)")
	_, err = runCommand(t, NewTranspileCommand(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 1")
}

func TestParseCommand(t *testing.T) {
	src := writeSQL(t, "q.sql", "select a from t where b = 1")

	out, err := runCommand(t, NewParseCommand(), src, "--dialect", "trino")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "WHERE")

	out, err = runCommand(t, NewParseCommand(), src, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "SelectStmt")

	_, err = runCommand(t, NewParseCommand(), src, "--dialect", "db2")
	assert.Error(t, err)

	broken := writeSQL(t, "broken.sql", "SELECT (a FROM t")
	_, err = runCommand(t, NewParseCommand(), broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestNormalizeCommand(t *testing.T) {
	src := writeSQL(t, "q.sql", "SELECT a /* x */ FROM sales WHERE a = 1 OR (b = 2 AND c = 3)")

	out, err := runCommand(t, NewNormalizeCommand(), src, "--map", "sales=lake.default.sales")
	require.NoError(t, err)
	assert.Contains(t, out, "FROM lake.default.sales")
	assert.Contains(t, out, "(a = 1 OR b = 2) AND (a = 1 OR c = 3)")

	out, err = runCommand(t, NewNormalizeCommand(), src, "--no-cnf")
	require.NoError(t, err)
	assert.NotContains(t, out, "(a = 1 OR b = 2)")
	assert.NotContains(t, out, "/*")
}

func TestHistoryCommand(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	history := filepath.Join(t.TempDir(), "history.db")

	run := func(cmd *cobra.Command, args ...string) string {
		t.Helper()
		config.ResetConfig()
		t.Setenv("SQLEQUIV_HISTORY_PATH", history)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	out := run(NewHistoryCommand())
	assert.Contains(t, out, "No comparisons recorded.")

	a, b := clitest.SetupScripts(t, "SELECT a FROM t", "SELECT a FROM t")
	compareOut := run(NewCompareCommand(), a, b, "--format", "json")
	var cmp output.CompareJSON
	require.NoError(t, json.Unmarshal([]byte(compareOut), &cmp))
	require.NotEmpty(t, cmp.RunID)

	out = run(NewHistoryCommand())
	assert.Contains(t, out, cmp.RunID)
	assert.Contains(t, out, "Equivalent")

	out = run(NewHistoryCommand(), "show", cmp.RunID)
	assert.Contains(t, out, "# Run "+cmp.RunID)
	assert.Contains(t, out, "Statement #1 (equal)")

	config.ResetConfig()
	cmd := NewHistoryCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"show", "missing"})
	assert.Error(t, cmd.Execute())
}

func TestDialectsCommand(t *testing.T) {
	out, err := runCommand(t, NewDialectsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "oracle")
	assert.Contains(t, out, "case-insensitive")

	infos := dialectInfos()
	var oracle output.DialectJSON
	for _, info := range infos {
		if info.Name == "oracle" {
			oracle = info
		}
	}
	assert.Contains(t, oracle.Translations, "trino")
	assert.Equal(t, "uppercase", oracle.Normalization)
}

func TestTruncateOneLine(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t", truncateOneLine("SELECT a\n  FROM t", 20))
	assert.Equal(t, "SELECT ...", truncateOneLine("SELECT a FROM t", 10))
}
