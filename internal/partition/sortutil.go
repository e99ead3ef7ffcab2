package partition

import (
	"sort"

	"github.com/rwcarlsen/femloop/internal/depgraph"
)

// byID returns nodes sorted by their registration id, giving a stable,
// reproducible iteration order over sets that depgraph otherwise returns
// with unspecified ordering (its Subgraph and Node accessors are backed
// by maps).
func byID(nodes []*depgraph.Node) []*depgraph.Node {
	out := make([]*depgraph.Node, len(nodes))
	copy(out, nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func setToSortedSlice(set map[*depgraph.Node]struct{}) []*depgraph.Node {
	out := make([]*depgraph.Node, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return byID(out)
}
