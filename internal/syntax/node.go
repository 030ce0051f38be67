package syntax

import (
	tt "github.com/idlint/idlint/internal/types"
)

// NodeKind is the closed set of syntactic categories the rules dispatch on.
// Grammar shapes with no category of their own map to KindOther.
type NodeKind uint8

const (
	KindOther NodeKind = iota
	KindIdentifier
	KindMemberExpr      // property access, incl. computed access
	KindProperty        // key/value entry in an object literal or pattern
	KindDefaultPattern  // binding with a default value (x = expr)
	KindObjectPattern   // object destructuring pattern
	KindObjectLiteral   // object expression
	KindAssignExpr      // assignment, incl. compound assignment
	KindCallExpr        // call expression
	KindNewExpr         // constructor invocation
	KindVarDeclarator   // single declarator of a var/let/const statement
	KindFuncDecl        // function declaration
	KindImportSpec      // named import binding
	KindNamespaceImport // `* as ns` import binding
	KindDefaultImport   // default import binding
	KindClassField      // field definition in a class body
)

var kindNames = [...]string{
	KindOther:           "other",
	KindIdentifier:      "identifier",
	KindMemberExpr:      "member-expression",
	KindProperty:        "property",
	KindDefaultPattern:  "default-pattern",
	KindObjectPattern:   "object-pattern",
	KindObjectLiteral:   "object-literal",
	KindAssignExpr:      "assignment",
	KindCallExpr:        "call",
	KindNewExpr:         "new",
	KindVarDeclarator:   "variable-declarator",
	KindFuncDecl:        "function-declaration",
	KindImportSpec:      "import-specifier",
	KindNamespaceImport: "namespace-import",
	KindDefaultImport:   "default-import",
	KindClassField:      "class-field",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Span is a half-open byte range in the source. It is a plain value usable
// directly as a map key, which is how reported-node deduplication works.
type Span struct {
	Start uint32
	End   uint32
}

// Node is one entry of the tree arena. Relation fields hold NoNode when the
// relation does not apply to the node's kind.
type Node struct {
	Kind   NodeKind
	Parent NodeID

	// Name is the identifier spelling for KindIdentifier nodes, without
	// the private-field sigil. Private records whether the sigil was there.
	Name    string
	Private bool

	Span  Span
	Start tt.Position
	End   tt.Position

	Key, Value      NodeID // KindProperty, KindClassField
	Object, Prop    NodeID // KindMemberExpr
	Left, Right     NodeID // KindAssignExpr, KindDefaultPattern
	Local, Imported NodeID // import bindings
	Shorthand       bool   // KindProperty: key and value share one token
}

// Comment is a source comment captured at parse time. Inline is true when
// code precedes the comment on its line.
type Comment struct {
	Text   string
	Line   int
	Inline bool
}

// Tree is a parsed source file: a parent-linked node arena in document
// order, plus the comments needed for suppression handling.
type Tree struct {
	arena         *arena
	root          NodeID
	comments      []Comment
	firstCodeLine int
}

// NewTree assembles a tree directly from pre-built nodes. Node i of the
// slice gets id i+1; the caller is responsible for consistent parent links.
func NewTree(nodes []Node, root NodeID) *Tree {
	return &Tree{arena: &arena{nodes: nodes}, root: root}
}

// Node returns the node for id, or nil for NoNode.
func (t *Tree) Node(id NodeID) *Node {
	return t.arena.get(id)
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return t.arena.len()
}

// Comments returns the source comments in document order.
func (t *Tree) Comments() []Comment {
	return t.comments
}

// FirstCodeLine returns the 1-based line of the first non-comment token,
// or 0 for a file with no code.
func (t *Tree) FirstCodeLine() int {
	return t.firstCodeLine
}

// Visit calls fn for every node of the given kind in document order and
// stops at the first error.
func (t *Tree) Visit(kind NodeKind, fn func(id NodeID, n *Node) error) error {
	for i := range t.arena.nodes {
		if t.arena.nodes[i].Kind != kind {
			continue
		}
		if err := fn(NodeID(i+1), &t.arena.nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

// HasAncestorKind reports whether any ancestor of id has the given kind.
func (t *Tree) HasAncestorKind(id NodeID, kind NodeKind) bool {
	for cur := t.Node(id); cur != nil; cur = t.Node(cur.Parent) {
		if cur.Kind == kind {
			return true
		}
	}
	return false
}
