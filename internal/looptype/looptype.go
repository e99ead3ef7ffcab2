package looptype

import "fmt"

// LoopType identifies a sweep flavor as the pair (category, block).
// Block is a non-negative integer identifying a mesh subdomain or
// boundary; it is meaningless for Category == None and is conventionally
// left at zero there.
type LoopType struct {
	Category Category
	Block    int
}

// New returns the LoopType (cat, block).
func New(cat Category, block int) LoopType {
	return LoopType{Category: cat, Block: block}
}

// Equal reports componentwise equality.
func (l LoopType) Equal(other LoopType) bool {
	return l.Category == other.Category && l.Block == other.Block
}

// Less defines the total order used for deterministic bucketing: first
// by category, then by block.
func (l LoopType) Less(other LoopType) bool {
	if l.Category != other.Category {
		return l.Category < other.Category
	}
	return l.Block < other.Block
}

// String renders the diagnostic form "<category>:block<n>".
func (l LoopType) String() string {
	return fmt.Sprintf("%s:block%d", l.Category, l.Block)
}
