package partition

import (
	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/looptype"
)

// floodUp pulls n and, transitively through its deps, every same-type
// dependency into g, so that an uncached value gets a private copy in
// every sweep that consumes it. Traversal stops at a node whose own
// LoopType differs from t, and at a cached node whose loop number is
// strictly greater than curLoop: such a node already has its own home
// sweep and does not need to be duplicated forward into an earlier one.
func floodUp(n *depgraph.Node, g *depgraph.Subgraph, t looptype.LoopType, curLoop int) {
	if !n.LoopType().Equal(t) {
		return
	}
	if n.IsCached() && n.MustLoop() > curLoop {
		return
	}
	g.Add(n)
	for _, dep := range setToSortedSlice(n.Deps()) {
		floodUp(dep, g, t, curLoop)
	}
}
