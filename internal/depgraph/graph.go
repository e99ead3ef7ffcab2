package depgraph

import "github.com/rwcarlsen/femloop/internal/looptype"

// Graph owns Node storage and hands out stable handles. New nodes are
// appended and assigned an id equal to their insertion index. A Graph is
// itself a Subgraph containing every node it owns.
type Graph struct {
	*Subgraph

	storage    []*Node
	generation int
	prepared   bool
}

// New returns an empty Graph.
func New() *Graph {
	g := &Graph{}
	g.Subgraph = newSubgraph()
	return g
}

// Create registers a new node and returns a stable handle to it. The
// node's id is set to the graph's current size before insertion.
func (g *Graph) Create(name string, cached, reducing bool, lt looptype.LoopType) *Node {
	n := &Node{
		owner:     g,
		name:      name,
		id:        -1,
		cached:    cached,
		reducing:  reducing,
		loopType:  lt,
		deps:      make(map[*Node]struct{}),
		dependers: make(map[*Node]struct{}),
	}
	// setID cannot fail here: ids are assigned by the graph itself,
	// always non-negative and always assigned exactly once.
	_ = n.setID(len(g.storage))
	g.storage = append(g.storage, n)
	g.add(n)
	g.bumpGeneration()
	return n
}

// Nodes returns every node owned by the graph, in insertion order. The
// returned slice is a fresh copy.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.storage))
	copy(out, g.storage)
	return out
}

// bumpGeneration invalidates the graph's prepared state; any subsequent
// Loop() query fails with ErrNotPrepared until Prepare is called again.
func (g *Graph) bumpGeneration() {
	g.generation++
	g.prepared = false
}

// Prepare (re-)computes loop numbers for every node in the graph. It
// must be called after graph construction, and again after any edge
// mutation, before any Node.Loop query.
func (g *Graph) Prepare() {
	for _, n := range g.storage {
		n.loopValid = false
		n.loopVal = 0
	}
	g.prepared = true
	for _, n := range g.roots() {
		_, _ = g.computeLoop(n)
	}
	// roots() selects nodes with no deps, and computeLoop recurses only
	// through dependers; walk every node as well so that any node the
	// root pass did not reach still gets a value.
	for _, n := range g.storage {
		if !n.loopValid {
			_, _ = g.computeLoop(n)
		}
	}
}

// computeLoop implements the recurrence from SPEC_FULL.md §4.2,
// memoizing into n.loopVal as it goes.
func (g *Graph) computeLoop(n *Node) (int, error) {
	if n.loopValid {
		return n.loopVal, nil
	}
	if len(n.dependers) == 0 {
		n.loopVal = 0
		n.loopValid = true
		return 0, nil
	}

	maxLoop := -1
	for d := range n.dependers {
		dLoop, err := g.computeLoop(d)
		if err != nil {
			return 0, err
		}
		candidate := dLoop
		if d.loopType != n.loopType || n.reducing {
			candidate = dLoop + 1
		}
		if candidate > maxLoop {
			maxLoop = candidate
		}
	}
	n.loopVal = maxLoop
	n.loopValid = true
	return maxLoop, nil
}
