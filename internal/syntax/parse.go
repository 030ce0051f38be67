package syntax

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	tt "github.com/idlint/idlint/internal/types"
)

// maxFileSize bounds the input the parser will accept.
const maxFileSize = 10 * 1024 * 1024

// ErrFileTooLarge is returned when the input exceeds maxFileSize.
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// ParseFile parses a JavaScript source file. If source is non-nil it is
// parsed directly and filename is used for positions only.
func ParseFile(filename string, source []byte) (*Tree, error) {
	if source == nil {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", filename, err)
		}
		source = content
	}
	return Parse(context.Background(), source)
}

// Parse parses JavaScript source into a parent-linked tree.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	if len(source) > maxFileSize {
		return nil, ErrFileTooLarge
	}

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tsTree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("error parsing source: %w", err)
	}
	defer tsTree.Close()

	b := &builder{
		src:       source,
		arena:     newArena(256),
		codeStart: make(map[int]uint32),
	}
	root := b.buildNode(tsTree.RootNode(), NoNode)

	t := &Tree{arena: b.arena, root: root}
	t.firstCodeLine = b.firstCodeLine
	for _, c := range b.comments {
		start, ok := b.codeStart[c.line]
		c.comment.Inline = ok && start < c.startByte
		t.comments = append(t.comments, c.comment)
	}
	return t, nil
}

type pendingComment struct {
	comment   Comment
	line      int
	startByte uint32
}

type builder struct {
	src           []byte
	arena         *arena
	comments      []pendingComment
	codeStart     map[int]uint32
	firstCodeLine int
}

// transparentTypes are grammar wrappers with no counterpart in the category
// model; their children attach to the wrapper's own parent.
var transparentTypes = map[string]bool{
	"arguments":                true,
	"formal_parameters":        true,
	"parenthesized_expression": true,
}

// identifierTypes are the grammar's identifier-like leaves.
var identifierTypes = map[string]bool{
	"identifier":                            true,
	"property_identifier":                   true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"statement_identifier":                  true,
}

func (b *builder) buildNode(ts *sitter.Node, parent NodeID) NodeID {
	typ := ts.Type()

	if typ == "comment" {
		b.addComment(ts)
		return NoNode
	}

	b.markCode(ts)

	if transparentTypes[typ] {
		b.buildChildren(ts, parent)
		return NoNode
	}
	if identifierTypes[typ] {
		return b.allocIdent(ts, parent, false)
	}

	switch typ {
	case "private_property_identifier":
		return b.allocIdent(ts, parent, true)

	case "member_expression":
		id := b.alloc(KindMemberExpr, ts, parent)
		object := b.buildField(ts, "object", id)
		prop := b.buildField(ts, "property", id)
		n := b.arena.get(id)
		n.Object, n.Prop = object, prop
		return id

	case "subscript_expression":
		id := b.alloc(KindMemberExpr, ts, parent)
		object := b.buildField(ts, "object", id)
		prop := b.buildField(ts, "index", id)
		n := b.arena.get(id)
		n.Object, n.Prop = object, prop
		return id

	case "pair", "pair_pattern":
		id := b.alloc(KindProperty, ts, parent)
		key := b.buildField(ts, "key", id)
		value := b.buildField(ts, "value", id)
		n := b.arena.get(id)
		n.Key, n.Value = key, value
		return id

	case "object":
		id := b.alloc(KindObjectLiteral, ts, parent)
		b.buildObjectEntries(ts, id)
		return id

	case "object_pattern":
		id := b.alloc(KindObjectPattern, ts, parent)
		b.buildObjectEntries(ts, id)
		return id

	case "object_assignment_pattern":
		return b.buildObjectDefault(ts, parent)

	case "assignment_pattern":
		id := b.alloc(KindDefaultPattern, ts, parent)
		left := b.buildField(ts, "left", id)
		right := b.buildField(ts, "right", id)
		n := b.arena.get(id)
		n.Left, n.Right = left, right
		return id

	case "assignment_expression", "augmented_assignment_expression":
		id := b.alloc(KindAssignExpr, ts, parent)
		left := b.buildField(ts, "left", id)
		right := b.buildField(ts, "right", id)
		n := b.arena.get(id)
		n.Left, n.Right = left, right
		return id

	case "call_expression":
		id := b.alloc(KindCallExpr, ts, parent)
		b.buildChildren(ts, id)
		return id

	case "new_expression":
		id := b.alloc(KindNewExpr, ts, parent)
		b.buildChildren(ts, id)
		return id

	case "variable_declarator":
		id := b.alloc(KindVarDeclarator, ts, parent)
		left := b.buildField(ts, "name", id)
		right := b.buildField(ts, "value", id)
		n := b.arena.get(id)
		n.Left, n.Right = left, right
		return id

	case "function_declaration", "generator_function_declaration":
		id := b.alloc(KindFuncDecl, ts, parent)
		b.buildChildren(ts, id)
		return id

	case "import_clause":
		// The clause itself has no category; a bare identifier child is a
		// default import binding.
		for i := 0; i < int(ts.NamedChildCount()); i++ {
			child := ts.NamedChild(i)
			if child.Type() == "identifier" {
				id := b.alloc(KindDefaultImport, child, parent)
				local := b.allocIdent(child, id, false)
				b.arena.get(id).Local = local
			} else {
				b.buildNode(child, parent)
			}
		}
		return NoNode

	case "named_imports":
		b.buildChildren(ts, parent)
		return NoNode

	case "namespace_import":
		id := b.alloc(KindNamespaceImport, ts, parent)
		for i := 0; i < int(ts.NamedChildCount()); i++ {
			child := ts.NamedChild(i)
			if child.Type() == "identifier" {
				local := b.allocIdent(child, id, false)
				b.arena.get(id).Local = local
			} else {
				b.buildNode(child, id)
			}
		}
		return id

	case "import_specifier":
		id := b.alloc(KindImportSpec, ts, parent)
		imported := b.buildField(ts, "name", id)
		local := b.buildField(ts, "alias", id)
		if local == NoNode {
			local = imported
		}
		n := b.arena.get(id)
		n.Local, n.Imported = local, imported
		return id

	case "field_definition":
		id := b.alloc(KindClassField, ts, parent)
		key := b.buildField(ts, "property", id)
		value := b.buildField(ts, "value", id)
		n := b.arena.get(id)
		n.Key, n.Value = key, value
		return id

	default:
		id := b.alloc(KindOther, ts, parent)
		b.buildChildren(ts, id)
		return id
	}
}

// buildObjectEntries builds the entries of an object literal or pattern.
// Shorthand entries are wrapped in a synthesized KindProperty whose key and
// value both reference the single identifier, matching the key/value shape
// every other entry has.
func (b *builder) buildObjectEntries(ts *sitter.Node, parent NodeID) {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		switch child.Type() {
		case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
			p := b.alloc(KindProperty, child, parent)
			ident := b.allocIdent(child, p, false)
			n := b.arena.get(p)
			n.Key, n.Value = ident, ident
			n.Shorthand = true
		default:
			b.buildNode(child, parent)
		}
	}
}

// buildObjectDefault builds a shorthand pattern entry with a default value
// (`{x = 1}`). The bound identifier is materialized twice, as the entry key
// and as the default pattern's left side, over the same source range; the
// validator's reported-set dedup relies on the ranges coinciding.
func (b *builder) buildObjectDefault(ts *sitter.Node, parent NodeID) NodeID {
	left := ts.ChildByFieldName("left")
	if left == nil || !identifierTypes[left.Type()] {
		// Non-shorthand defaults inside patterns keep the raw shape.
		id := b.alloc(KindDefaultPattern, ts, parent)
		l := b.buildField(ts, "left", id)
		r := b.buildField(ts, "right", id)
		n := b.arena.get(id)
		n.Left, n.Right = l, r
		return id
	}

	p := b.alloc(KindProperty, ts, parent)
	key := b.allocIdent(left, p, false)

	dp := b.alloc(KindDefaultPattern, ts, p)
	bound := b.allocIdent(left, dp, false)
	right := b.buildField(ts, "right", dp)
	n := b.arena.get(dp)
	n.Left, n.Right = bound, right

	pn := b.arena.get(p)
	pn.Key, pn.Value = key, dp
	pn.Shorthand = true
	return p
}

func (b *builder) buildField(ts *sitter.Node, field string, parent NodeID) NodeID {
	child := ts.ChildByFieldName(field)
	if child == nil {
		return NoNode
	}
	return b.buildNode(child, parent)
}

func (b *builder) buildChildren(ts *sitter.Node, parent NodeID) {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		b.buildNode(ts.NamedChild(i), parent)
	}
}

func (b *builder) alloc(kind NodeKind, ts *sitter.Node, parent NodeID) NodeID {
	return b.arena.alloc(Node{
		Kind:   kind,
		Parent: parent,
		Span:   Span{Start: ts.StartByte(), End: ts.EndByte()},
		Start:  position(ts.StartPoint()),
		End:    position(ts.EndPoint()),
	})
}

func (b *builder) allocIdent(ts *sitter.Node, parent NodeID, private bool) NodeID {
	name := ts.Content(b.src)
	if private {
		name = strings.TrimPrefix(name, "#")
	}
	id := b.alloc(KindIdentifier, ts, parent)
	n := b.arena.get(id)
	n.Name = name
	n.Private = private
	return id
}

func (b *builder) addComment(ts *sitter.Node) {
	line := int(ts.StartPoint().Row) + 1
	b.comments = append(b.comments, pendingComment{
		comment:   Comment{Text: ts.Content(b.src), Line: line},
		line:      line,
		startByte: ts.StartByte(),
	})
}

// markCode records where code tokens start, which is what decides whether a
// comment is inline and where the first code line is.
func (b *builder) markCode(ts *sitter.Node) {
	if ts.Type() == "program" {
		return
	}
	line := int(ts.StartPoint().Row) + 1
	start := ts.StartByte()
	if cur, ok := b.codeStart[line]; !ok || start < cur {
		b.codeStart[line] = start
	}
	if b.firstCodeLine == 0 || line < b.firstCodeLine {
		b.firstCodeLine = line
	}
}

func position(p sitter.Point) tt.Position {
	return tt.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
