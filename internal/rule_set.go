package internal

import (
	"fmt"
	"regexp"

	"github.com/idlint/idlint/internal/lints"
	"github.com/idlint/idlint/internal/syntax"
	tt "github.com/idlint/idlint/internal/types"
)

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given tree and returns a slice of Issues.
	Check(filename string, tree *syntax.Tree) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

// IdentifierMatchRule validates identifier spellings against a configured
// regular expression.
type IdentifierMatchRule struct {
	severity tt.Severity
	pattern  *regexp.Regexp
	opts     lints.IdentifierMatchOptions
}

// NewIdentifierMatchRule compiles the configured pattern and decodes the
// rule options. A malformed pattern or an unknown option is a configuration
// error, surfaced before any file is traversed.
func NewIdentifierMatchRule(cfg tt.ConfigRule) (LintRule, error) {
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = lints.DefaultIdentifierPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("identifier-match: invalid pattern %q: %w", pattern, err)
	}

	opts, err := decodeIdentifierMatchOptions(cfg.Options)
	if err != nil {
		return nil, err
	}

	return &IdentifierMatchRule{severity: cfg.Severity, pattern: re, opts: opts}, nil
}

func (r *IdentifierMatchRule) Check(filename string, tree *syntax.Tree) ([]tt.Issue, error) {
	return lints.DetectIdentifierMismatch(filename, tree, r.pattern, r.opts, r.severity)
}

func (r *IdentifierMatchRule) Name() string { return "identifier-match" }

func (r *IdentifierMatchRule) Severity() tt.Severity { return r.severity }

func (r *IdentifierMatchRule) SetSeverity(s tt.Severity) { r.severity = s }

func decodeIdentifierMatchOptions(raw map[string]any) (lints.IdentifierMatchOptions, error) {
	var opts lints.IdentifierMatchOptions
	for key, value := range raw {
		b, ok := value.(bool)
		if !ok {
			return opts, fmt.Errorf("identifier-match: option %q must be a boolean", key)
		}
		switch key {
		case "properties":
			opts.Properties = b
		case "classFields":
			opts.ClassFields = b
		case "onlyDeclarations":
			opts.OnlyDeclarations = b
		case "ignoreDestructuring":
			opts.IgnoreDestructuring = b
		case "ignoreNamedImports":
			opts.IgnoreNamedImports = b
		default:
			return opts, fmt.Errorf("identifier-match: unknown option %q", key)
		}
	}
	return opts, nil
}

// IdentifierLengthRule bounds identifier spelling lengths.
type IdentifierLengthRule struct {
	severity tt.Severity
	opts     lints.IdentifierLengthOptions
}

func NewIdentifierLengthRule(cfg tt.ConfigRule) (LintRule, error) {
	opts, err := decodeIdentifierLengthOptions(cfg.Options)
	if err != nil {
		return nil, err
	}
	return &IdentifierLengthRule{severity: cfg.Severity, opts: opts}, nil
}

func (r *IdentifierLengthRule) Check(filename string, tree *syntax.Tree) ([]tt.Issue, error) {
	return lints.DetectIdentifierLength(filename, tree, r.opts, r.severity)
}

func (r *IdentifierLengthRule) Name() string { return "identifier-length" }

func (r *IdentifierLengthRule) Severity() tt.Severity { return r.severity }

func (r *IdentifierLengthRule) SetSeverity(s tt.Severity) { r.severity = s }

func decodeIdentifierLengthOptions(raw map[string]any) (lints.IdentifierLengthOptions, error) {
	var opts lints.IdentifierLengthOptions
	for key, value := range raw {
		switch key {
		case "min", "max":
			i, ok := value.(int)
			if !ok {
				return opts, fmt.Errorf("identifier-length: option %q must be an integer", key)
			}
			if key == "min" {
				opts.Min = i
			} else {
				opts.Max = i
			}
		case "exceptions":
			list, ok := value.([]any)
			if !ok {
				return opts, fmt.Errorf("identifier-length: option %q must be a list of strings", key)
			}
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return opts, fmt.Errorf("identifier-length: option %q must be a list of strings", key)
				}
				opts.Exceptions = append(opts.Exceptions, s)
			}
		default:
			return opts, fmt.Errorf("identifier-length: unknown option %q", key)
		}
	}
	return opts, nil
}
