package depgraph

import (
	"fmt"

	"github.com/rwcarlsen/femloop/internal/looptype"
)

// Node is a single vertex in a dependency graph, representing one
// computation (a kernel, material, variable, postprocessor, or boundary
// condition in the finite-element sense).
type Node struct {
	owner *Graph

	name string
	id   int

	cached   bool
	reducing bool
	loopType looptype.LoopType

	deps      map[*Node]struct{}
	dependers map[*Node]struct{}

	loopValid bool
	loopVal   int
}

// Name returns the caller-supplied, not-necessarily-unique node name.
func (n *Node) Name() string { return n.name }

// ID returns the node's dense, non-negative registration index.
func (n *Node) ID() int { return n.id }

// IsCached reports whether the node's value survives across consecutive
// sweeps without recomputation. Reducing nodes are always cached.
func (n *Node) IsCached() bool { return n.cached || n.reducing }

// IsReducing reports whether the node's value is only available after an
// entire sweep completes (e.g. a sum/aggregation).
func (n *Node) IsReducing() bool { return n.reducing }

// LoopType returns the node's sweep flavor.
func (n *Node) LoopType() looptype.LoopType { return n.loopType }

// Deps returns the set of nodes this node depends on. The returned map
// is a fresh copy safe for the caller to mutate.
func (n *Node) Deps() map[*Node]struct{} { return cloneSet(n.deps) }

// Dependers returns the set of nodes that depend on this node. The
// returned map is a fresh copy safe for the caller to mutate.
func (n *Node) Dependers() map[*Node]struct{} { return cloneSet(n.dependers) }

// NumDeps and NumDependers give cheap sizes without copying.
func (n *Node) NumDeps() int      { return len(n.deps) }
func (n *Node) NumDependers() int { return len(n.dependers) }

func cloneSet(s map[*Node]struct{}) map[*Node]struct{} {
	out := make(map[*Node]struct{}, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Needs declares that n depends on other: other is inserted into
// n.deps, and n is inserted into other.dependers, atomically. The call
// is idempotent — needing the same node twice is a no-op. It fails with
// ErrSelfDependency if other == n, and with ErrCyclicGraph if the edge
// would introduce a cycle.
func (n *Node) Needs(other *Node) error {
	if other == n {
		return fmt.Errorf("%w: %q", ErrSelfDependency, n.name)
	}
	if _, ok := n.deps[other]; ok {
		return nil
	}
	if other.DependsOn(n) {
		return fmt.Errorf("%w: %q -> %q", ErrCyclicGraph, n.name, other.name)
	}

	n.deps[other] = struct{}{}
	other.dependers[n] = struct{}{}
	n.owner.bumpGeneration()
	return nil
}

// ClearDeps detaches n from both sides of every edge it participates in,
// as either a dependency or a depender.
func (n *Node) ClearDeps() {
	for d := range n.deps {
		delete(d.dependers, n)
	}
	for d := range n.dependers {
		delete(d.deps, n)
	}
	n.deps = make(map[*Node]struct{})
	n.dependers = make(map[*Node]struct{})
	n.owner.bumpGeneration()
}

// DependsOn reports whether n transitively requires target through
// forward (deps) edges. Each call walks the graph fresh with its own
// visited set, so independent queries never interfere with each other.
func (n *Node) DependsOn(target *Node) bool {
	if n == target {
		return false
	}
	visited := make(map[*Node]struct{})
	var walk func(*Node) bool
	walk = func(cur *Node) bool {
		if _, ok := visited[cur]; ok {
			return false
		}
		visited[cur] = struct{}{}
		for d := range cur.deps {
			if d == target {
				return true
			}
			if walk(d) {
				return true
			}
		}
		return false
	}
	return walk(n)
}

// setID assigns the node's registration id exactly once.
func (n *Node) setID(id int) error {
	if n.id != -1 {
		return ErrIDAlreadySet
	}
	if id < 0 {
		return ErrInvalidID
	}
	n.id = id
	return nil
}

// Loop returns this node's memoized loop number, per the recurrence in
// SPEC_FULL.md §4.2. It fails with ErrNotPrepared if the graph's loop
// numbers have not been (re-)computed since the last edge mutation.
func (n *Node) Loop() (int, error) {
	if !n.owner.prepared {
		return 0, ErrNotPrepared
	}
	if n.loopValid {
		return n.loopVal, nil
	}
	return n.owner.computeLoop(n)
}

// MustLoop is a convenience wrapper around Loop for call sites that have
// already established (e.g. via a prior Graph.Prepare) that the loop
// number is available and want to avoid threading an error return
// through simple accessor chains such as sort keys.
func (n *Node) MustLoop() int {
	l, err := n.Loop()
	if err != nil {
		panic(err)
	}
	return l
}

// String implements fmt.Stringer for diagnostics.
func (n *Node) String() string { return n.name }
