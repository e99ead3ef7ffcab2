package partition

import (
	"sort"
	"strconv"

	"github.com/rwcarlsen/femloop/internal/depgraph"
)

// mergeSiblings combines compatible sibling partitions in place. It
// builds a meta-graph with one node per partition, wires an edge between
// two meta-nodes whenever some node in one partition depends on a node
// in the other, then greedily chooses a maximal, mutually-compatible set
// of pairwise merges: a merge is skipped if applying an earlier, cheaper
// merge already put its two partitions into an incompatible dependency
// relationship (a genuine cycle at the sweep level).
func mergeSiblings(partitions []*depgraph.Subgraph) ([]*depgraph.Subgraph, error) {
	meta := depgraph.New()
	nodeToMeta := make(map[*depgraph.Node]*depgraph.Node)
	metaToPartition := make(map[*depgraph.Node]int)

	for i, part := range partitions {
		members := byID(part.Nodes())
		if len(members) == 0 {
			return nil, ErrEmptyPartition
		}
		metaNode := meta.Create(metaLoopName(i), false, false, members[0].LoopType())
		metaToPartition[metaNode] = i
		for _, n := range members {
			nodeToMeta[n] = metaNode
		}
	}

	for _, part := range partitions {
		for _, n := range byID(part.Nodes()) {
			for _, dep := range setToSortedSlice(n.Deps()) {
				from, to := nodeToMeta[n], nodeToMeta[dep]
				if from == to {
					continue
				}
				// Needs is idempotent, so re-declaring an
				// already-present inter-partition edge is harmless.
				if err := from.Needs(to); err != nil {
					return nil, err
				}
			}
		}
	}
	meta.Prepare()

	metaNodes := byID(meta.Nodes())

	type pair struct{ a, b *depgraph.Node }
	var candidates []pair
	seen := make(map[[2]*depgraph.Node]bool)
	for _, l1 := range metaNodes {
		for _, l2 := range metaNodes {
			key := [2]*depgraph.Node{l1, l2}
			rkey := [2]*depgraph.Node{l2, l1}
			if seen[key] || seen[rkey] {
				continue
			}
			if !canMerge(l1, l2) {
				continue
			}
			seen[key] = true
			seen[rkey] = true
			candidates = append(candidates, pair{l1, l2})
		}
	}

	cancellations := make([][]int, len(candidates))
	for i := range candidates {
		loop1, loop2 := candidates[i].a, candidates[i].b
		for j := i + 1; j < len(candidates); j++ {
			other1, other2 := candidates[j].a, candidates[j].b

			if loop1 == other2 || loop1.DependsOn(other2) || other2.DependsOn(loop1) {
				other1, other2 = other2, other1
			}

			cancel := false
			switch {
			case loop1.DependsOn(other1) && other2.DependsOn(loop2):
				cancel = true
			case other1.DependsOn(loop1) && loop2.DependsOn(other2):
				cancel = true
			case loop1 == other1 && (loop2.DependsOn(other2) || other2.DependsOn(loop2)):
				cancel = true
			case loop2 == other2 && (loop1.DependsOn(other1) || other1.DependsOn(loop1)):
				cancel = true
			}
			if cancel {
				cancellations[i] = append(cancellations[i], j)
				cancellations[j] = append(cancellations[j], i)
			}
		}
	}

	indices := make([]int, len(candidates))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return len(cancellations[indices[i]]) < len(cancellations[indices[j]])
	})

	// remap cancellation indices from original candidate order to the new
	// sorted order.
	origToSorted := make(map[int]int, len(indices))
	for sortedPos, origIdx := range indices {
		origToSorted[origIdx] = sortedPos
	}
	sortedMerges := make([]pair, len(indices))
	sortedCancellations := make([][]int, len(indices))
	for sortedPos, origIdx := range indices {
		sortedMerges[sortedPos] = candidates[origIdx]
		remapped := make([]int, len(cancellations[origIdx]))
		for k, c := range cancellations[origIdx] {
			remapped[k] = origToSorted[c]
		}
		sortedCancellations[sortedPos] = remapped
	}

	canceled := make(map[int]bool)
	chosen := make(map[int]bool)
	for i := range sortedMerges {
		if canceled[i] {
			continue
		}
		chosen[i] = true
		for _, c := range sortedCancellations[i] {
			canceled[c] = true
		}
	}

	mergedInto := make([]*depgraph.Subgraph, len(partitions))
	for i := range partitions {
		mergedInto[i] = partitions[i]
	}

	for i := range sortedMerges {
		if !chosen[i] {
			continue
		}
		merge := sortedMerges[i]
		part1Idx := metaToPartition[merge.a]
		part2Idx := metaToPartition[merge.b]

		if mergedInto[part1Idx] != mergedInto[part2Idx] {
			mergedInto[part1Idx].Merge(mergedInto[part2Idx])
		}
		for k := range mergedInto {
			if mergedInto[part1Idx] == mergedInto[part2Idx] {
				break
			}
			if k == part1Idx {
				continue
			}
			if mergedInto[k] == mergedInto[part2Idx] {
				mergedInto[k].Clear()
				mergedInto[k] = mergedInto[part1Idx]
			}
		}
	}

	// partitions itself was mutated in place by the Merge/Clear calls
	// above (mergedInto holds the very same pointers); a slot that was
	// merged away is now empty and gets dropped, preserving the original
	// relative order of the surviving, absorbing partitions.
	var result []*depgraph.Subgraph
	for _, p := range partitions {
		if p.Size() == 0 {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func metaLoopName(i int) string {
	return "loop" + strconv.Itoa(i)
}
