package partition

import (
	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/looptype"
)

// canMerge reports whether two sweep-representative nodes could be
// executed as a single combined sweep: their LoopType categories must be
// merge-compatible, their block indices must match exactly, and neither
// may depend (even transitively) on the other, since a real dependency
// implies one sweep must fully finish before the other starts.
func canMerge(a, b *depgraph.Node) bool {
	if a == b {
		return false
	}
	at, bt := a.LoopType(), b.LoopType()
	if !looptype.MergeCompatible(at.Category, bt.Category) {
		return false
	}
	if at.Block != bt.Block {
		return false
	}
	if a.DependsOn(b) || b.DependsOn(a) {
		return false
	}
	return true
}
