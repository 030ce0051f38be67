package syntax

// NodeID addresses a node in a tree's arena. IDs are 1-based; the zero
// value (NoNode) means "no node": the parent of the root, or an absent
// relation such as the key of an entry that has none.
type NodeID uint32

// NoNode is the absent-node sentinel.
const NoNode NodeID = 0

type arena struct {
	nodes []Node
}

func newArena(capHint int) *arena {
	return &arena{nodes: make([]Node, 0, capHint)}
}

// alloc stores n and returns its 1-based id.
func (a *arena) alloc(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes))
}

// get returns a pointer into the arena. The pointer is invalidated by the
// next alloc, so relations are always re-fetched by id.
func (a *arena) get(id NodeID) *Node {
	if id == NoNode {
		return nil
	}
	return &a.nodes[id-1]
}

func (a *arena) len() int {
	return len(a.nodes)
}
