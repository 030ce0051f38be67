package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAlloc(t *testing.T) {
	a := newArena(4)
	assert.Equal(t, 0, a.len())

	first := a.alloc(Node{Kind: KindIdentifier, Name: "x"})
	second := a.alloc(Node{Kind: KindMemberExpr})

	assert.Equal(t, NodeID(1), first)
	assert.Equal(t, NodeID(2), second)
	assert.Equal(t, 2, a.len())

	assert.Equal(t, "x", a.get(first).Name)
	assert.Equal(t, KindMemberExpr, a.get(second).Kind)
}

func TestArenaNoNode(t *testing.T) {
	a := newArena(0)
	assert.Nil(t, a.get(NoNode))
}

func TestArenaPointersReFetchedAfterGrowth(t *testing.T) {
	a := newArena(1)
	id := a.alloc(Node{Kind: KindIdentifier, Name: "first"})

	// grow past the initial capacity
	for i := 0; i < 16; i++ {
		a.alloc(Node{Kind: KindOther})
	}

	assert.Equal(t, "first", a.get(id).Name)
}
