package lint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/idlint/idlint/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfigurationFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".idlint.yaml", `
name: idlint
rules:
  identifier-match:
    severity: error
    pattern: "^[a-z]+$"
    options:
      properties: true
  identifier-length:
    severity: warning
    options:
      min: 3
`)

	config, err := parseConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, "idlint", config.Name)

	match, ok := config.Rules["identifier-match"]
	require.True(t, ok)
	assert.Equal(t, tt.SeverityError, match.Severity)
	assert.Equal(t, "^[a-z]+$", match.Pattern)
	assert.Equal(t, true, match.Options["properties"])

	length, ok := config.Rules["identifier-length"]
	require.True(t, ok)
	assert.Equal(t, tt.SeverityWarning, length.Severity)
	assert.Equal(t, 3, length.Options["min"])
}

func TestParseConfigurationFileUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "name: idlint\nunexpected: true\n")

	_, err := parseConfigurationFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing configuration")
}

func TestParseConfigurationFileBadSeverity(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "rules:\n  identifier-match:\n    severity: loud\n")

	_, err := parseConfigurationFile(path)
	require.Error(t, err)
}

func TestNewWithoutConfiguration(t *testing.T) {
	engine, err := New("")
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("const whatever_name = 1;"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNewWithConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".idlint.yaml", `
rules:
  identifier-match:
    severity: error
    pattern: "^[a-z]+$"
`)

	engine, err := New(path)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("const badName = 1;"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "identifier-match", issues[0].Rule)
}

func TestNewWithMissingConfiguration(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestHasDesiredExtension(t *testing.T) {
	assert.True(t, hasDesiredExtension("a.js"))
	assert.True(t, hasDesiredExtension("a.jsx"))
	assert.True(t, hasDesiredExtension("a.mjs"))
	assert.True(t, hasDesiredExtension("a.cjs"))
	assert.False(t, hasDesiredExtension("a.ts"))
	assert.False(t, hasDesiredExtension("a.go"))
}

func TestProcessSources(t *testing.T) {
	engine := newPatternEngine(t, "^[a-z]+$")

	sources := [][]byte{
		[]byte("const good = 1;"),
		[]byte("const badName = 2;"),
	}
	issues, err := ProcessSources(context.Background(), nil, engine, sources, ProcessSource)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestProcessPathDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.js", "const badName = 1;\n")
	writeFile(t, dir, "two.mjs", "const alsoBad = 2;\n")
	writeFile(t, dir, "skip.txt", "const ignoredName = 3;\n")

	engine := newPatternEngine(t, "^[a-z]+$")

	issues, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestProcessPathKeepsResultsWhenOneFileFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "const badName = 1;\n")
	writeFile(t, dir, "b.js", "const alsoBad = 2;\n")
	writeFile(t, dir, "c.js", "const thirdBad = 3;\n")

	engine := newPatternEngine(t, "^[a-z]+$")

	failOnB := func(e LintEngine, path string) ([]tt.Issue, error) {
		if filepath.Base(path) == "b.js" {
			return nil, errors.New("unreadable")
		}
		return ProcessFile(e, path)
	}

	// The failing file is skipped; every other file's issues survive.
	issues, err := ProcessPath(context.Background(), nil, engine, dir, failOnB)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestProcessPathSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.js", "const badName = 1;\n")

	engine := newPatternEngine(t, "^[a-z]+$")

	issues, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestProcessPathUndesiredExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "const badName = 1;\n")

	engine := newPatternEngine(t, "^[a-z]+$")

	issues, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func newPatternEngine(t *testing.T, pattern string) LintEngine {
	t.Helper()
	dir := t.TempDir()
	path := writeFile(t, dir, ".idlint.yaml", "rules:\n  identifier-match:\n    severity: error\n    pattern: \""+pattern+"\"\n")
	engine, err := New(path)
	require.NoError(t, err)
	return engine
}
