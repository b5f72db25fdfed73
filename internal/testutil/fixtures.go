package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteSQLPair writes an oracle.sql/trino.sql pair into a fresh temp dir.
func WriteSQLPair(t testing.TB, source, target string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return WriteFile(t, dir, "oracle.sql", source), WriteFile(t, dir, "trino.sql", target)
}
