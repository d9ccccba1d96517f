package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSQL(t *testing.T, dir, name, sql string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sql), 0o644))
	return path
}

func runTranspile(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewTranspileCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestTranspileExpression(t *testing.T) {
	out := runTranspile(t, "-e", "GROUP_CONCAT(x SEPARATOR '-')")
	assert.Equal(t, "STRING_AGG(x, '-')\n", out)
}

func TestTranspileNoInput(t *testing.T) {
	cmd := NewTranspileCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}

func TestTranspileFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSQL(t, dir, "q.sql", "DATE_ADD(x, 1, 'DAY')")

	out := runTranspile(t, path)
	assert.Equal(t, "x + INTERVAL '1' DAY;\n", out)
}

func TestTranspileDirectoryToOutDir(t *testing.T) {
	dir := t.TempDir()
	writeSQL(t, dir, "a.sql", "SELECT 1")
	writeSQL(t, dir, "b.sql", "SELECT 2")
	writeSQL(t, dir, "notes.txt", "not sql")
	outDir := filepath.Join(t.TempDir(), "out")

	runTranspile(t, dir, "-o", outDir)

	a, err := os.ReadFile(filepath.Join(outDir, "a.sql"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", string(a))

	b, err := os.ReadFile(filepath.Join(outDir, "b.sql"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2;\n", string(b))

	_, err = os.Stat(filepath.Join(outDir, "notes.txt"))
	assert.True(t, os.IsNotExist(err), "non-matching extensions are skipped")
}

func TestTranspileMultipleFilesHeaders(t *testing.T) {
	dir := t.TempDir()
	a := writeSQL(t, dir, "a.sql", "SELECT 1")
	b := writeSQL(t, dir, "b.sql", "SELECT 2")

	out := runTranspile(t, a, b)
	assert.Contains(t, out, "-- "+a)
	assert.Contains(t, out, "-- "+b)
	assert.Contains(t, out, "SELECT 1;")
	assert.Contains(t, out, "SELECT 2;")
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSQL(t, dir, "a.sql", "SELECT 1")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	c := writeSQL(t, sub, "c.SQL", "SELECT 3")
	writeSQL(t, dir, "skip.txt", "nope")

	files, err := collectFiles([]string{dir}, ".sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, c}, files, "walk recurses and matches the extension case-insensitively")

	_, err = collectFiles([]string{filepath.Join(dir, "missing.sql")}, ".sql")
	require.Error(t, err)
}

func TestDialectNames(t *testing.T) {
	names := DialectNames()
	assert.Contains(t, names, "postgres")
	assert.Contains(t, names, "ansi")
}
