package lints

import (
	"fmt"
	"regexp"

	"github.com/idlint/idlint/internal/syntax"
	tt "github.com/idlint/idlint/internal/types"
)

// DefaultIdentifierPattern accepts any non-empty spelling.
const DefaultIdentifierPattern = "^.+$"

// IdentifierMatchOptions holds the context switches of the identifier-match
// rule. Every switch defaults to false.
type IdentifierMatchOptions struct {
	// Properties enables checking member-access and object-entry names.
	Properties bool
	// ClassFields enables checking field names in class bodies.
	ClassFields bool
	// OnlyDeclarations restricts the fallback check to declaration sites.
	OnlyDeclarations bool
	// IgnoreDestructuring exempts bindings inside object patterns, except
	// where a new name or a default value is introduced.
	IgnoreDestructuring bool
	// IgnoreNamedImports exempts named import bindings.
	IgnoreNamedImports bool
}

// DetectIdentifierMismatch reports every identifier whose spelling fails
// pattern, classifying each identifier by its syntactic context to decide
// whether it must match. Diagnostics are deduplicated by source range, so
// an identifier reachable through two nodes of the same range (shorthand
// destructuring) is reported once.
func DetectIdentifierMismatch(
	filename string,
	tree *syntax.Tree,
	pattern *regexp.Regexp,
	opts IdentifierMatchOptions,
	severity tt.Severity,
) ([]tt.Issue, error) {
	c := &identifierMatchChecker{
		filename: filename,
		tree:     tree,
		pattern:  pattern,
		opts:     opts,
		severity: severity,
		reported: make(map[syntax.Span]struct{}),
	}
	if err := tree.Visit(syntax.KindIdentifier, c.checkIdentifier); err != nil {
		return nil, err
	}
	return c.issues, nil
}

type identifierMatchChecker struct {
	filename string
	tree     *syntax.Tree
	pattern  *regexp.Regexp
	opts     IdentifierMatchOptions
	severity tt.Severity
	reported map[syntax.Span]struct{}
	issues   []tt.Issue
}

func (c *identifierMatchChecker) checkIdentifier(id syntax.NodeID, n *syntax.Node) error {
	parentID := n.Parent
	if parentID == syntax.NoNode {
		return nil
	}
	parent := c.tree.Node(parentID)
	name := n.Name

	// Classify assignment vs. plain access one level up: when the parent is
	// a member access, the effective parent is the access's own parent.
	effID := parentID
	if parent.Kind == syntax.KindMemberExpr {
		effID = parent.Parent
	}
	eff := c.tree.Node(effID)

	switch parent.Kind {
	case syntax.KindMemberExpr:
		if !c.opts.Properties {
			return nil
		}
		obj := c.tree.Node(parent.Object)
		switch {
		case obj != nil && obj.Kind == syntax.KindIdentifier && obj.Name == name:
			c.validate(n)
		case eff != nil && eff.Kind == syntax.KindAssignExpr && c.assignsToProperty(eff, name):
			c.validate(n)
		case eff != nil && eff.Kind == syntax.KindAssignExpr && !c.isMemberExpr(eff.Right):
			c.validate(n)
		}
		return nil

	case syntax.KindProperty, syntax.KindDefaultPattern:
		return c.checkObjectEntry(id, n, parent, eff)

	case syntax.KindImportSpec:
		if c.opts.IgnoreNamedImports {
			return nil
		}
		if parent.Local == id {
			c.validate(n)
		}
		return nil

	case syntax.KindNamespaceImport, syntax.KindDefaultImport:
		if parent.Local == id {
			c.validate(n)
		}
		return nil

	case syntax.KindClassField:
		if c.opts.ClassFields {
			c.validate(n)
		}
		return nil

	default:
		if c.shouldReport(eff, name) {
			c.report(n)
		}
		return nil
	}
}

// checkObjectEntry handles identifiers under a key/value entry or a
// default-value pattern.
func (c *identifierMatchChecker) checkObjectEntry(id syntax.NodeID, n *syntax.Node, parent *syntax.Node, eff *syntax.Node) error {
	name := n.Name
	grand := c.tree.Node(parent.Parent)

	if grand != nil && grand.Kind == syntax.KindObjectPattern {
		// A default on a shorthand entry creates a new binding, so it is
		// checked even when destructuring is ignored.
		if parent.Shorthand && c.hasDefault(parent.Value) {
			c.validate(n)
		}

		if parent.Key == syntax.NoNode {
			return fmt.Errorf(
				"object pattern entry at %s:%d:%d has no key; the tree shape violates the grammar invariant",
				c.filename, n.Start.Line, n.Start.Column,
			)
		}

		keyName := c.tree.Node(parent.Key).Name
		valueName := ""
		if v := c.tree.Node(parent.Value); v != nil {
			valueName = v.Name
		}
		keyEqualsValue := keyName == valueName

		// The value side carries the binding; skip the key of a renaming
		// entry to avoid reporting the same entry twice.
		if !keyEqualsValue && parent.Key == id {
			return nil
		}

		if valueName != "" && c.invalid(name) && !(keyEqualsValue && c.opts.IgnoreDestructuring) {
			c.report(n)
		}
	}

	if !c.opts.Properties ||
		(c.opts.IgnoreDestructuring && c.tree.HasAncestorKind(id, syntax.KindObjectPattern)) {
		return nil
	}

	// The right-hand side of a default is a plain reference, not a binding.
	if parent.Right != id && c.shouldReport(eff, name) {
		c.report(n)
	}
	return nil
}

// shouldReport is the general test applied outside the specialized
// contexts: honor onlyDeclarations, exempt call and constructor arguments,
// and require the name to fail the pattern.
func (c *identifierMatchChecker) shouldReport(eff *syntax.Node, name string) bool {
	if c.opts.OnlyDeclarations && !isDeclaration(eff) {
		return false
	}
	if eff != nil && (eff.Kind == syntax.KindCallExpr || eff.Kind == syntax.KindNewExpr) {
		return false
	}
	return c.invalid(name)
}

func isDeclaration(n *syntax.Node) bool {
	return n != nil && (n.Kind == syntax.KindFuncDecl || n.Kind == syntax.KindVarDeclarator)
}

func (c *identifierMatchChecker) invalid(name string) bool {
	return !c.pattern.MatchString(name)
}

// validate reports n when its name fails the pattern.
func (c *identifierMatchChecker) validate(n *syntax.Node) {
	if c.invalid(n.Name) {
		c.report(n)
	}
}

// report emits one diagnostic per unique source range.
func (c *identifierMatchChecker) report(n *syntax.Node) {
	if _, seen := c.reported[n.Span]; seen {
		return
	}
	c.reported[n.Span] = struct{}{}

	var msg string
	if n.Private {
		msg = fmt.Sprintf("Identifier '#%s' does not match the pattern '%s'.", n.Name, c.pattern.String())
	} else {
		msg = fmt.Sprintf("Identifier '%s' does not match the pattern '%s'.", n.Name, c.pattern.String())
	}

	c.issues = append(c.issues, tt.Issue{
		Rule:     "identifier-match",
		Category: "naming",
		Filename: c.filename,
		Message:  msg,
		Severity: c.severity,
		Start:    n.Start,
		End:      n.End,
	})
}

func (c *identifierMatchChecker) assignsToProperty(assign *syntax.Node, name string) bool {
	left := c.tree.Node(assign.Left)
	if left == nil || left.Kind != syntax.KindMemberExpr {
		return false
	}
	prop := c.tree.Node(left.Prop)
	return prop != nil && prop.Name == name
}

func (c *identifierMatchChecker) isMemberExpr(id syntax.NodeID) bool {
	n := c.tree.Node(id)
	return n != nil && n.Kind == syntax.KindMemberExpr
}

func (c *identifierMatchChecker) hasDefault(value syntax.NodeID) bool {
	v := c.tree.Node(value)
	return v != nil && v.Kind == syntax.KindDefaultPattern
}
