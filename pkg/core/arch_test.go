package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// coreImports returns every import path used by non-test files of pkg/core.
func coreImports(t *testing.T) map[string]string {
	t.Helper()
	fset := token.NewFileSet()
	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	imports := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(".", entry.Name()), nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			imports[strings.Trim(imp.Path.Value, `"`)] = entry.Name()
		}
	}
	return imports
}

// TestCoreImportsOnly verifies pkg/core only imports pkg/token and stdlib.
func TestCoreImportsOnly(t *testing.T) {
	allowedExternal := map[string]bool{
		"github.com/leapstack-labs/sqlequiv/pkg/token": true,
	}
	for path, file := range coreImports(t) {
		if !strings.Contains(path, ".") {
			continue
		}
		if !allowedExternal[path] {
			t.Errorf("%s imports forbidden package: %s", file, path)
		}
	}
}

// TestCoreDoesNotImportInternal verifies pkg/core doesn't import any internal packages.
func TestCoreDoesNotImportInternal(t *testing.T) {
	for path, file := range coreImports(t) {
		if strings.Contains(path, "/internal/") {
			t.Errorf("%s imports internal package: %s", file, path)
		}
	}
}
