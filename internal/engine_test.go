package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/idlint/idlint/internal/types"
)

func TestNewEngineDefaults(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	// The default pattern accepts any non-empty spelling.
	issues, err := engine.RunSource([]byte("const bad_name = 1;"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNewEngineConfiguredPattern(t *testing.T) {
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {
			Severity: tt.SeverityError,
			Pattern:  "^[a-z]+$",
		},
	})
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("const badName = 1;\nconst good = 2;"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "identifier-match", issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Start.Line)
}

func TestNewEngineInvalidPattern(t *testing.T) {
	_, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {Severity: tt.SeverityError, Pattern: "^[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestNewEngineUnknownRule(t *testing.T) {
	_, err := NewEngine(map[string]tt.ConfigRule{
		"no-such-rule": {Severity: tt.SeverityError},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rule")
}

func TestNewEngineUnknownOption(t *testing.T) {
	_, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {
			Severity: tt.SeverityError,
			Options:  map[string]any{"typo": true},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option")
}

func TestNewEngineNonBooleanOption(t *testing.T) {
	_, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {
			Severity: tt.SeverityError,
			Options:  map[string]any{"properties": "yes"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a boolean")
}

func TestSeverityOffDisablesRule(t *testing.T) {
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {Severity: tt.SeverityOff, Pattern: "^[a-z]+$"},
	})
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("const badName = 1;"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestIdentifierLengthOffByDefault(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("const x = 1;"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestIdentifierLengthConfigured(t *testing.T) {
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-length": {
			Severity: tt.SeverityWarning,
			Options:  map[string]any{"min": 3, "exceptions": []any{"id"}},
		},
	})
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("const ab = 1;\nconst id = 2;\nconst long = 3;"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "identifier-length", issues[0].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestIgnoreRule(t *testing.T) {
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {Severity: tt.SeverityError, Pattern: "^[a-z]+$"},
	})
	require.NoError(t, err)
	engine.IgnoreRule("identifier-match")

	issues, err := engine.RunSource([]byte("const badName = 1;"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNolintSuppression(t *testing.T) {
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {Severity: tt.SeverityError, Pattern: "^[a-z]+$"},
	})
	require.NoError(t, err)

	src := "const badName = 1; //nolint:identifier-match\nconst alsoBad = 2;"
	issues, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Start.Line)
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.js")
	require.NoError(t, os.WriteFile(path, []byte("const bad_name = 1;\n"), 0o644))

	engine, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {Severity: tt.SeverityError, Pattern: "^[a-zA-Z]+$"},
	})
	require.NoError(t, err)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
}

func TestIgnorePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.js")
	require.NoError(t, os.WriteFile(path, []byte("const bad_name = 1;\n"), 0o644))

	engine, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-match": {Severity: tt.SeverityError, Pattern: "^[a-zA-Z]+$"},
	})
	require.NoError(t, err)
	engine.IgnorePath(dir)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestIdentifierLengthBadOptions(t *testing.T) {
	_, err := NewEngine(map[string]tt.ConfigRule{
		"identifier-length": {
			Severity: tt.SeverityWarning,
			Options:  map[string]any{"min": "three"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an integer")
}
