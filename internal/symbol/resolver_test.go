package symbol

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindSymbol(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package demo\n\nfunc Alpha() int {\n\treturn 1\n}\n")
	writeFile(t, dir, filepath.Join("sub", "util.go"), "package sub\n\nfunc Beta() {}\n")
	writeFile(t, dir, filepath.Join("sub", "util_test.go"), "package sub\n\nfunc Beta() {}\n")
	writeFile(t, dir, filepath.Join("vendor", "dep.go"), "package dep\n\nfunc Alpha() int { return 2 }\n")
	writeFile(t, dir, "notes.txt", "Alpha\n")

	r := NewTreeResolver(dir)

	locs, err := r.FindSymbol("Alpha")
	require.NoError(t, err)
	require.Equal(t, []SymbolLocation{
		{FilePath: "main.go", Line: 3, Character: 1},
	}, locs)

	locs, err = r.FindSymbol("Beta")
	require.NoError(t, err)
	require.Equal(t, []SymbolLocation{
		{FilePath: filepath.Join("sub", "util.go"), Line: 3, Character: 1},
	}, locs)

	locs, err = r.FindSymbol("Missing")
	require.NoError(t, err)
	require.Empty(t, locs)
}
