package internal

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/idlint/idlint/internal/nolint"
	"github.com/idlint/idlint/internal/syntax"
	tt "github.com/idlint/idlint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
}

// NewEngine creates a new lint engine from the configured rules. A rule
// with an invalid configuration (malformed pattern, unknown option) fails
// engine construction.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}
	return engine, nil
}

type ruleConstructor func(tt.ConfigRule) (LintRule, error)

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	"identifier-match":  NewIdentifierMatchRule,
	"identifier-length": NewIdentifierLengthRule,
}

// defaultSeverities holds the severity a rule runs with when the
// configuration does not mention it.
var defaultSeverities = map[string]tt.Severity{
	"identifier-match":  tt.SeverityError,
	"identifier-length": tt.SeverityOff,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule)
	if err := e.registerDefaultRules(); err != nil {
		return err
	}

	for key, cfg := range rules {
		cstr, ok := allRuleConstructors[key]
		if !ok {
			return fmt.Errorf("unknown rule %q in configuration", key)
		}
		if cfg.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
			continue
		}
		rule, err := cstr(cfg)
		if err != nil {
			return err
		}
		e.rules[key] = rule
	}
	return nil
}

func (e *Engine) registerDefaultRules() error {
	for key, cstr := range allRuleConstructors {
		if defaultSeverities[key] == tt.SeverityOff {
			continue
		}
		rule, err := cstr(tt.ConfigRule{Severity: defaultSeverities[key]})
		if err != nil {
			return err
		}
		e.rules[key] = rule
	}
	return nil
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	for _, ignored := range e.ignoredPaths {
		if strings.HasPrefix(filename, ignored) {
			return nil, nil
		}
	}

	tree, err := syntax.ParseFile(filename, nil)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	return e.runRules(filename, tree)
}

// RunSource applies all lint rules to the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	tree, err := syntax.ParseFile("", source)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	return e.runRules("", tree)
}

func (e *Engine) runRules(filename string, tree *syntax.Tree) ([]tt.Issue, error) {
	nolintMgr := nolint.ParseComments(tree, filename)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	var firstErr error
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] {
				return
			}
			issues, err := r.Check(filename, tree)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// A rule error signals a broken invariant, not a lint
				// finding; it must not be swallowed.
				if firstErr == nil {
					firstErr = fmt.Errorf("rule %s: %w", r.Name(), err)
				}
				return
			}
			allIssues = append(allIssues, filterNolintIssues(nolintMgr, issues)...)
		}(rule)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return allIssues, nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, path)
}

// filterNolintIssues filters issues based on nolint comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Filename, issue.Start.Line, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return &SourceCode{Lines: strings.Split(string(content), "\n")}, nil
}
