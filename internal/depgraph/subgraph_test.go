package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubgraphIDsAreUnique(t *testing.T) {
	s1 := NewSubgraph()
	s2 := NewSubgraph()
	assert.NotEqual(t, s1.ID(), s2.ID())
}

func TestSubgraphAddRemoveContains(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))

	s := NewSubgraph()
	assert.False(t, s.Contains(a))

	s.Add(a)
	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))
	assert.Equal(t, 1, s.Size())

	s.Remove(a)
	assert.False(t, s.Contains(a))
	assert.Equal(t, 0, s.Size())
}

func TestSubgraphRootsAndLeaves(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	c := g.Create("c", false, false, elemAt(0))

	require.NoError(t, a.Needs(b))
	require.NoError(t, b.Needs(c))

	s := NewSubgraphOf(a, b, c)
	roots := s.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, c, roots[0])

	leaves := s.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, a, leaves[0])
}

func TestSubgraphRootsRelativeToMembership(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	c := g.Create("c", false, false, elemAt(0))

	require.NoError(t, a.Needs(b))
	require.NoError(t, b.Needs(c))

	// Excluding c from the subgraph makes b a root, since b's only dep
	// (c) is outside the membership set.
	s := NewSubgraphOf(a, b)
	roots := s.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, b, roots[0])
}

func TestSubgraphMergeLeavesOtherUntouched(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))

	s1 := NewSubgraphOf(a)
	s2 := NewSubgraphOf(b)

	s1.Merge(s2)
	assert.True(t, s1.Contains(a))
	assert.True(t, s1.Contains(b))
	assert.Equal(t, 1, s2.Size())
}

func TestSubgraphClear(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	s := NewSubgraphOf(a)
	s.Clear()
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(a))
}

func TestGraphIsSubgraphOfEverything(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	require.NoError(t, a.Needs(b))

	roots := g.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, b, roots[0])

	leaves := g.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, a, leaves[0])
}
