package partition

import "github.com/rwcarlsen/femloop/internal/depgraph"

// findConnected grows all with every node reachable from n by walking
// both deps and dependers edges, restricted to membership in g. It is
// the undirected weakly-connected-component traversal used to split a
// same-LoopType bucket into independently schedulable sweeps.
func findConnected(g, all *depgraph.Subgraph, n *depgraph.Node) {
	if all.Contains(n) || !g.Contains(n) {
		return
	}
	all.Add(n)
	for _, d := range setToSortedSlice(n.Deps()) {
		findConnected(g, all, d)
	}
	for _, d := range setToSortedSlice(n.Dependers()) {
		findConnected(g, all, d)
	}
}

// splitConnected divides each of the given partitions into its weakly
// connected components, in place of the single bucket. A partition with
// nodes reachable from more than one root only when that root's
// component doesn't already cover them is split into as many results as
// it has components.
func splitConnected(partitions []*depgraph.Subgraph) []*depgraph.Subgraph {
	var splits []*depgraph.Subgraph
	for _, g := range partitions {
		remainingRoots := make(map[*depgraph.Node]struct{})
		for _, r := range g.Roots() {
			remainingRoots[r] = struct{}{}
		}
		for len(remainingRoots) > 0 {
			ordered := setToSortedSlice(remainingRoots)
			r := ordered[0]

			split := depgraph.NewSubgraph()
			findConnected(g, split, r)
			for _, sr := range split.Roots() {
				delete(remainingRoots, sr)
			}
			splits = append(splits, split)
		}
	}
	return splits
}
