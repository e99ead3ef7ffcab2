package graphspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/looptype"
)

func TestBuildWiresDependencies(t *testing.T) {
	spec := &GraphSpec{Nodes: []*NodeSpec{
		{Name: "a", Category: looptype.Nodal},
		{Name: "b", Category: looptype.Nodal, DependsOn: []string{"a"}},
	}}

	g, err := Build(spec)
	require.NoError(t, err)

	nodes := g.Nodes()
	require.Len(t, nodes, 2)

	var a, b *depgraph.Node
	for _, n := range nodes {
		switch n.Name() {
		case "a":
			a = n
		case "b":
			b = n
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.True(t, b.DependsOn(a))

	loopA, err := a.Loop()
	require.NoError(t, err)
	loopB, err := b.Loop()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, loopB, loopA)
}

func TestBuildRejectsUnknownDependency(t *testing.T) {
	spec := &GraphSpec{Nodes: []*NodeSpec{
		{Name: "a", DependsOn: []string{"ghost"}},
	}}

	_, err := Build(spec)
	assert.ErrorIs(t, err, ErrUnknownDependency)
}
