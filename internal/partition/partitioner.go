package partition

import (
	"fmt"

	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/looptype"
)

// ComputePartitions turns g into an ordered set of mesh sweeps. Nodes are
// first bucketed by loop number and then by LoopType; uncached
// dependencies are flooded up into every bucket that consumes them; each
// bucket is split into its weakly-connected components; and, if merge is
// true, compatible sibling sweeps are recombined into a single sweep
// where doing so introduces no scheduling conflict.
func ComputePartitions(g *depgraph.Graph, merge bool) ([]*depgraph.Subgraph, error) {
	g.Prepare()

	maxLoop := 0
	for _, n := range byID(g.Roots()) {
		l, err := n.Loop()
		if err != nil {
			return nil, err
		}
		if l > maxLoop {
			maxLoop = l
		}
	}

	loopBuckets := make([]*depgraph.Subgraph, maxLoop+1)
	for i := range loopBuckets {
		loopBuckets[i] = depgraph.NewSubgraph()
	}
	for _, n := range byID(g.Nodes()) {
		l, err := n.Loop()
		if err != nil {
			return nil, err
		}
		loopBuckets[l].Add(n)
	}

	var partitions []*depgraph.Subgraph
	for _, bucket := range loopBuckets {
		byType := make(map[looptype.LoopType]*depgraph.Subgraph)
		var order []looptype.LoopType
		for _, n := range byID(bucket.Nodes()) {
			lt := n.LoopType()
			sub, ok := byType[lt]
			if !ok {
				sub = depgraph.NewSubgraph()
				byType[lt] = sub
				order = append(order, lt)
			}
			sub.Add(n)
		}
		// order already reflects each LoopType's first appearance among
		// nodes visited in ascending id (insertion) order, per §5's
		// determinism contract.
		for _, lt := range order {
			partitions = append(partitions, byType[lt])
		}
	}

	// Duplicate uncached dependencies transitively into every sweep that
	// consumes them. Cached dependencies keep a single home, since each
	// node was already assigned to the deepest loop it is needed in.
	for _, part := range partitions {
		for _, n := range byID(part.Leaves()) {
			curLoop, err := n.Loop()
			if err != nil {
				return nil, err
			}
			floodUp(n, part, n.LoopType(), curLoop)
		}
	}

	partitions = splitConnected(partitions)

	if err := checkNoDanglingDeps(partitions); err != nil {
		return nil, err
	}

	if merge {
		merged, err := mergeSiblings(partitions)
		if err != nil {
			return nil, err
		}
		partitions = merged
	}
	return partitions, nil
}

func checkNoDanglingDeps(partitions []*depgraph.Subgraph) error {
	allNodes := make(map[*depgraph.Node]struct{})
	allDeps := make(map[*depgraph.Node]struct{})
	for _, part := range partitions {
		for _, n := range part.Nodes() {
			allNodes[n] = struct{}{}
			for d := range n.Deps() {
				allDeps[d] = struct{}{}
			}
		}
	}
	for d := range allDeps {
		if _, ok := allNodes[d]; !ok {
			return fmt.Errorf("%w: %q", ErrDanglingDependency, d.Name())
		}
	}
	return nil
}

// ComputeLoops maps a partitioned graph to its execution order: one
// topologically-sorted wave sequence per sweep, with the sweeps
// themselves ordered from first-to-run to last-to-run. This is the
// reverse of ComputePartitions' bucket order, since a node's loop number
// counts how many sweeps remain *after* it, not how many precede it.
func ComputeLoops(partitions []*depgraph.Subgraph) ([][][]*depgraph.Node, error) {
	loops := make([][][]*depgraph.Node, len(partitions))
	for i, part := range partitions {
		if part.Size() == 0 {
			return nil, ErrEmptyPartition
		}
		loops[i] = ExecOrder(part)
	}
	for i, j := 0, len(loops)-1; i < j; i, j = i+1, j-1 {
		loops[i], loops[j] = loops[j], loops[i]
	}
	return loops, nil
}
