package lints

import (
	"fmt"

	"github.com/idlint/idlint/internal/syntax"
	tt "github.com/idlint/idlint/internal/types"
)

// IdentifierLengthOptions bounds the length of identifier spellings.
type IdentifierLengthOptions struct {
	// Min is the shortest accepted spelling. Zero falls back to 2.
	Min int
	// Max is the longest accepted spelling; zero means unbounded.
	Max int
	// Exceptions lists exact spellings that are always accepted.
	Exceptions []string
}

// DetectIdentifierLength reports binding-position identifiers whose
// spelling is shorter than Min or longer than Max. Property accesses and
// the imported (non-local) half of a renamed import are not bindings and
// are left alone.
func DetectIdentifierLength(filename string, tree *syntax.Tree, opts IdentifierLengthOptions, severity tt.Severity) ([]tt.Issue, error) {
	min := opts.Min
	if min == 0 {
		min = 2
	}
	exceptions := make(map[string]struct{}, len(opts.Exceptions))
	for _, name := range opts.Exceptions {
		exceptions[name] = struct{}{}
	}

	var issues []tt.Issue
	reported := make(map[syntax.Span]struct{})
	err := tree.Visit(syntax.KindIdentifier, func(id syntax.NodeID, n *syntax.Node) error {
		if !bindsName(tree, id, n) {
			return nil
		}
		if _, ok := exceptions[n.Name]; ok {
			return nil
		}
		if _, seen := reported[n.Span]; seen {
			return nil
		}

		length := len([]rune(n.Name))
		var msg string
		switch {
		case length < min:
			msg = fmt.Sprintf("Identifier name '%s' is too short (< %d).", n.Name, min)
		case opts.Max > 0 && length > opts.Max:
			msg = fmt.Sprintf("Identifier name '%s' is too long (> %d).", n.Name, opts.Max)
		default:
			return nil
		}

		reported[n.Span] = struct{}{}
		issues = append(issues, tt.Issue{
			Rule:     "identifier-length",
			Category: "naming",
			Filename: filename,
			Message:  msg,
			Severity: severity,
			Start:    n.Start,
			End:      n.End,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// bindsName reports whether the identifier introduces a name.
func bindsName(tree *syntax.Tree, id syntax.NodeID, n *syntax.Node) bool {
	parent := tree.Node(n.Parent)
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case syntax.KindVarDeclarator, syntax.KindFuncDecl, syntax.KindClassField:
		return parent.Right != id && parent.Value != id
	case syntax.KindDefaultPattern:
		return parent.Left == id
	case syntax.KindProperty:
		// Shorthand in a literal is a reference; only pattern shorthand binds.
		return parent.Shorthand && tree.HasAncestorKind(id, syntax.KindObjectPattern)
	case syntax.KindImportSpec, syntax.KindNamespaceImport, syntax.KindDefaultImport:
		return parent.Local == id
	default:
		return false
	}
}
