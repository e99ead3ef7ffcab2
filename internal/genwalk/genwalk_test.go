package genwalk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwcarlsen/femloop/internal/looptype"
)

func TestAddNodesExpandsCartesianProduct(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("Var1", false, false, []int{1, 2}, []looptype.Category{looptype.Nodal, looptype.Face}))
	assert.Len(t, m.candidates["Var1"], 4)
}

func TestAddNodesNoBlocksMakesSingleNoneNode(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("Scalar", false, false, nil, nil))
	require.Len(t, m.candidates["Scalar"], 1)
	assert.Equal(t, looptype.None, m.candidates["Scalar"][0].LoopType().Category)
}

func TestAddNodesRejectsReducingWithoutBlocks(t *testing.T) {
	m := NewMatrix()
	err := m.AddNodes("Bad", true, true, nil, nil)
	assert.ErrorIs(t, err, ErrReducingNeedsBlocks)
}

func TestBindDepWiresSameBlock(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("A", false, false, []int{1, 2}, []looptype.Category{looptype.Nodal}))
	require.NoError(t, m.AddNodes("B", false, false, []int{1, 2}, []looptype.Category{looptype.Nodal}))
	require.NoError(t, m.BindDep("A", "B"))

	a1, ok := m.findNode("A", looptype.Nodal, 1)
	require.True(t, ok)
	b1, ok := m.findNode("B", looptype.Nodal, 1)
	require.True(t, ok)
	b2, ok := m.findNode("B", looptype.Nodal, 2)
	require.True(t, ok)

	assert.True(t, a1.DependsOn(b1))
	assert.False(t, a1.DependsOn(b2))
}

func TestBindDepReducingDependsOnAllBlocks(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("A", false, false, []int{1, 2}, []looptype.Category{looptype.Nodal}))
	require.NoError(t, m.AddNodes("Sum", true, true, []int{1, 2}, []looptype.Category{looptype.Nodal}))
	require.NoError(t, m.BindDep("A", "Sum"))

	a1, ok := m.findNode("A", looptype.Nodal, 1)
	require.True(t, ok)
	sum1, ok := m.findNode("Sum", looptype.Nodal, 1)
	require.True(t, ok)
	sum2, ok := m.findNode("Sum", looptype.Nodal, 2)
	require.True(t, ok)

	assert.True(t, a1.DependsOn(sum1))
	assert.True(t, a1.DependsOn(sum2))
}

func TestBindDepIncompatibleCategoryRejected(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("A", false, false, []int{1}, []looptype.Category{looptype.Nodal}))
	require.NoError(t, m.AddNodes("B", false, false, []int{1}, []looptype.Category{looptype.Face}))

	err := m.BindDep("A", "B")
	assert.ErrorIs(t, err, ErrIncompatibleCategory)
}

func TestBindDepBridgesThroughCachedSingleCategory(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("A", false, false, []int{1}, []looptype.Category{looptype.Nodal}))
	require.NoError(t, m.AddNodes("Cache", true, false, []int{1}, []looptype.Category{looptype.Face}))

	require.NoError(t, m.BindDep("A", "Cache"))

	a1, ok := m.findNode("A", looptype.Nodal, 1)
	require.True(t, ok)
	cache1, ok := m.findNode("Cache", looptype.Face, 1)
	require.True(t, ok)
	assert.True(t, a1.DependsOn(cache1))
}

func TestWalkWiresEdgeWithCertainTransition(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("Start", false, false, nil, nil))
	require.NoError(t, m.AddNodes("Dep", false, false, nil, nil))
	require.NoError(t, m.AddTransition("Start", "Dep", 1.0))

	start := m.candidates["Start"][0]
	dep := m.candidates["Dep"][0]
	assert.False(t, start.DependsOn(dep))

	Walk(m, rand.New(rand.NewSource(1)), start)
	assert.True(t, start.DependsOn(dep))
}

func TestWalkNoTransitionsIsNoop(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.AddNodes("Lonely", false, false, nil, nil))
	n := m.candidates["Lonely"][0]
	assert.NotPanics(t, func() { Walk(m, rand.New(rand.NewSource(1)), n) })
}
