package nolint

import (
	"fmt"
	"math"
	"strings"

	"github.com/idlint/idlint/internal/syntax"
)

const nolintPrefix = "//nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope represents a line range in the code where nolint applies.
type nolintScope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// ParseComments reads the nolint comments captured at parse time and
// returns a Manager. An inline comment suppresses its own line, a
// standalone comment suppresses the following line, and a comment placed
// before any code suppresses the whole file.
func ParseComments(tree *syntax.Tree, filename string) *Manager {
	manager := Manager{
		scopes: make(map[string][]nolintScope, len(tree.Comments())),
	}
	firstCodeLine := tree.FirstCodeLine()

	for _, comment := range tree.Comments() {
		ns, err := parseComment(comment, firstCodeLine)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes[filename] = append(manager.scopes[filename], ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func parseComment(comment syntax.Comment, firstCodeLine int) (nolintScope, error) {
	var ns nolintScope
	text := comment.Text

	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("invalid nolint comment")
	}

	rest := text[len(nolintPrefix):]

	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}

	if len(rest) > 0 && rest[0] == ':' {
		rest = strings.TrimPrefix(rest, ":")
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)

	switch {
	case firstCodeLine > 0 && comment.Line < firstCodeLine:
		// before any code: applies to the entire file
		ns.startLine = 1
		ns.endLine = math.MaxInt
	case comment.Inline:
		ns.startLine = comment.Line
		ns.endLine = comment.Line
	default:
		ns.startLine = comment.Line
		ns.endLine = comment.Line + 1
	}
	return ns, nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// IsNolint checks if a given line and rule are nolinted.
func (m *Manager) IsNolint(filename string, line int, ruleName string) bool {
	scopes, exists := m.scopes[filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if line < ns.startLine || line > ns.endLine {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
