package partition

import "github.com/rwcarlsen/femloop/internal/depgraph"

// ExecOrder computes a topological execution order for g as a sequence
// of waves: each wave is the current root set, taken all at once, except
// that an already-executed cached root is skipped rather than
// re-executed (its stored value is still valid). g's own membership is
// left untouched; the traversal walks a private copy.
func ExecOrder(g *depgraph.Subgraph) [][]*depgraph.Node {
	work := depgraph.NewSubgraphOf(g.Nodes()...)
	executed := make(map[*depgraph.Node]struct{})

	var order [][]*depgraph.Node
	for work.Size() > 0 {
		var wave []*depgraph.Node
		for _, n := range byID(work.Roots()) {
			if _, done := executed[n]; done && n.IsCached() {
				continue
			}
			executed[n] = struct{}{}
			wave = append(wave, n)
			work.Remove(n)
		}
		if len(wave) == 0 {
			// Every current root has already executed and is cached; the
			// remaining nodes can never become roots on their own, which
			// would indicate a defect upstream rather than real
			// deadlock, since a prepared, acyclic graph always has fresh
			// roots to make progress on. Break defensively rather than
			// spin forever.
			break
		}
		order = append(order, wave)
	}
	return order
}
