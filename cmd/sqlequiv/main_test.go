package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlequiv/internal/cli"
	"github.com/leapstack-labs/sqlequiv/internal/cli/config"
)

func examplesDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "..", "examples")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	buf := new(bytes.Buffer)
	cmd := cli.NewRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlequiv v")
}

func TestCompareExamples(t *testing.T) {
	dir := examplesDir(t)
	out, err := run(t, "compare",
		filepath.Join(dir, "oracle.sql"),
		filepath.Join(dir, "trino.sql"),
		"--mapping", filepath.Join(dir, "mapping.yaml"),
		"--collect-all",
		"--no-history",
		"-o", "text",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "--- Comparing Statement #3 ---")
	assert.Contains(t, out, "Verdict: Equivalent")
}

func TestTranspileExample(t *testing.T) {
	out, err := run(t, "transpile", filepath.Join(examplesDir(t), "oracle.sql"))
	require.NoError(t, err)
	assert.Contains(t, out, "COALESCE(SUM(S.AMOUNT), 0)")
	assert.Contains(t, out, "LIMIT 10")
	assert.NotContains(t, out, "DUAL")
}
