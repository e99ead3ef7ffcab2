package depgraph

import (
	"errors"
	"testing"

	"github.com/rwcarlsen/femloop/internal/looptype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elemAt(block int) looptype.LoopType {
	return looptype.New(looptype.ElemOnElem, block)
}

func TestCreateAssignsDenseIDs(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	c := g.Create("c", false, false, elemAt(0))

	assert.Equal(t, 0, a.ID())
	assert.Equal(t, 1, b.ID())
	assert.Equal(t, 2, c.ID())
	assert.Len(t, g.Nodes(), 3)
	assert.True(t, g.Contains(a))
	assert.True(t, g.Contains(b))
	assert.True(t, g.Contains(c))
}

func TestNeedsIsSymmetric(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))

	require.NoError(t, a.Needs(b))

	_, aHasB := a.Deps()[b]
	_, bHasA := b.Dependers()[a]
	assert.True(t, aHasB)
	assert.True(t, bHasA)

	// idempotent
	require.NoError(t, a.Needs(b))
	assert.Len(t, a.Deps(), 1)
}

func TestNeedsRejectsSelfEdge(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	err := a.Needs(a)
	assert.ErrorIs(t, err, ErrSelfDependency)
}

func TestNeedsRejectsCycle(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	c := g.Create("c", false, false, elemAt(0))

	require.NoError(t, a.Needs(b))
	require.NoError(t, b.Needs(c))

	err := c.Needs(a)
	assert.True(t, errors.Is(err, ErrCyclicGraph))
}

func TestClearDepsDetachesBothSides(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	c := g.Create("c", false, false, elemAt(0))

	require.NoError(t, a.Needs(b))
	require.NoError(t, c.Needs(a))

	a.ClearDeps()
	assert.Empty(t, a.Deps())
	assert.Empty(t, a.Dependers())
	assert.Empty(t, b.Dependers())
	assert.Empty(t, c.Deps())
}

func TestDependsOnTransitive(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	c := g.Create("c", false, false, elemAt(0))

	require.NoError(t, a.Needs(b))
	require.NoError(t, b.Needs(c))

	assert.True(t, a.DependsOn(b))
	assert.True(t, a.DependsOn(c))
	assert.False(t, c.DependsOn(a))
	assert.False(t, a.DependsOn(a))
}

func TestLoopRequiresPrepare(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	_, err := a.Loop()
	assert.ErrorIs(t, err, ErrNotPrepared)

	g.Prepare()
	l, err := a.Loop()
	require.NoError(t, err)
	assert.Equal(t, 0, l)
}

func TestLoopInvalidatedByMutation(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", false, false, elemAt(0))
	g.Prepare()
	_, err := a.Loop()
	require.NoError(t, err)

	require.NoError(t, a.Needs(b))
	_, err = a.Loop()
	assert.ErrorIs(t, err, ErrNotPrepared)

	g.Prepare()
	al, err := a.Loop()
	require.NoError(t, err)
	bl, err := b.Loop()
	require.NoError(t, err)
	assert.Equal(t, 0, al)
	assert.Equal(t, 1, bl)
}

// TestLoopNumberingScenario mirrors spec scenario S1: a—b—c—d with b
// cached+reducing, a depends on b,c,d and b depends on c.
func TestLoopNumberingScenario(t *testing.T) {
	g := New()
	a := g.Create("a", false, false, elemAt(0))
	b := g.Create("b", true, true, elemAt(0))
	c := g.Create("c", false, false, elemAt(0))
	d := g.Create("d", false, false, elemAt(0))

	require.NoError(t, a.Needs(b))
	require.NoError(t, a.Needs(c))
	require.NoError(t, a.Needs(d))
	require.NoError(t, b.Needs(c))

	g.Prepare()

	al := a.MustLoop()
	bl := b.MustLoop()
	cl := c.MustLoop()
	dl := d.MustLoop()

	assert.Equal(t, 0, al)
	// b is reducing, so its own consumer (a) must land a full loop past
	// it: loop(b) = loop(a)+1 = 1.
	assert.Equal(t, 1, bl)
	// c is depended on by both a and b. c itself is not reducing and
	// shares a's LoopType, so the edge to a contributes loop(a) = 0; the
	// edge to b (also same LoopType, c non-reducing) contributes loop(b)
	// unmodified = 1. loop(c) = max(0, 1) = 1.
	assert.Equal(t, 1, cl)
	assert.Equal(t, 0, dl)
}
