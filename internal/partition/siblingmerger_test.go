package partition

import (
	"testing"

	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMergeSiblingsChainsThreeMutuallyIndependentPartitions exercises the
// pointer-remapping bookkeeping when more than one chosen merge touches
// the same partition: three unconnected same-block pairs should all
// collapse into a single sweep.
func TestMergeSiblingsChainsThreeMutuallyIndependentPartitions(t *testing.T) {
	g := depgraph.New()
	mk := func(name string) *depgraph.Node {
		return g.Create(name, false, false, block0())
	}
	a1, a2 := mk("a1"), mk("a2")
	b1, b2 := mk("b1"), mk("b2")
	c1, c2 := mk("c1"), mk("c2")
	require.NoError(t, a1.Needs(a2))
	require.NoError(t, b1.Needs(b2))
	require.NoError(t, c1.Needs(c2))

	pa := depgraph.NewSubgraphOf(a1, a2)
	pb := depgraph.NewSubgraphOf(b1, b2)
	pc := depgraph.NewSubgraphOf(c1, c2)

	merged, err := mergeSiblings([]*depgraph.Subgraph{pa, pb, pc})
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, 6, merged[0].Size())
	for _, n := range []*depgraph.Node{a1, a2, b1, b2, c1, c2} {
		assert.True(t, merged[0].Contains(n))
	}
}

// TestMergeSiblingsSkipsDependentPartitions ensures a partition that
// depends (even indirectly) on another is never merged with it, since
// that would require executing one sweep both before and after the
// other.
func TestMergeSiblingsSkipsDependentPartitions(t *testing.T) {
	g := depgraph.New()
	upstream := g.Create("upstream", false, false, block0())
	downstream := g.Create("downstream", false, false, block0())
	require.NoError(t, downstream.Needs(upstream))

	pUp := depgraph.NewSubgraphOf(upstream)
	pDown := depgraph.NewSubgraphOf(downstream)

	merged, err := mergeSiblings([]*depgraph.Subgraph{pUp, pDown})
	require.NoError(t, err)
	assert.Len(t, merged, 2)
}

func TestMergeSiblingsRejectsEmptyPartition(t *testing.T) {
	empty := depgraph.NewSubgraph()
	_, err := mergeSiblings([]*depgraph.Subgraph{empty})
	assert.ErrorIs(t, err, ErrEmptyPartition)
}
