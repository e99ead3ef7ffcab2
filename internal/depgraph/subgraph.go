package depgraph

import "sync/atomic"

// nextSubgraphID hands out process-unique Subgraph ids for diagnostics,
// mirroring the C++ source's static Subgraph::_next_id counter.
var nextSubgraphID atomic.Int64

// Subgraph is a filtered view over a set of Node handles owned by some
// Graph. It does not own the nodes it references.
type Subgraph struct {
	id    int64
	nodes map[*Node]struct{}
}

func newSubgraph() *Subgraph {
	return &Subgraph{
		id:    nextSubgraphID.Add(1),
		nodes: make(map[*Node]struct{}),
	}
}

// NewSubgraph returns an empty Subgraph with a fresh process-unique id.
func NewSubgraph() *Subgraph { return newSubgraph() }

// NewSubgraphOf returns a Subgraph containing exactly the given nodes.
func NewSubgraphOf(nodes ...*Node) *Subgraph {
	s := newSubgraph()
	for _, n := range nodes {
		s.add(n)
	}
	return s
}

// ID returns the Subgraph's process-unique diagnostic id.
func (s *Subgraph) ID() int64 { return s.id }

func (s *Subgraph) add(n *Node) { s.nodes[n] = struct{}{} }

// Add inserts n into the subgraph.
func (s *Subgraph) Add(n *Node) { s.add(n) }

// Remove deletes n from the subgraph, if present.
func (s *Subgraph) Remove(n *Node) { delete(s.nodes, n) }

// Contains reports whether n is a member of the subgraph.
func (s *Subgraph) Contains(n *Node) bool {
	_, ok := s.nodes[n]
	return ok
}

// Nodes returns every member of the subgraph. The returned slice has no
// guaranteed order.
func (s *Subgraph) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// Size returns the number of member nodes.
func (s *Subgraph) Size() int { return len(s.nodes) }

// Clear removes every member node from the subgraph.
func (s *Subgraph) Clear() { s.nodes = make(map[*Node]struct{}) }

// Merge adds every member of other into s. other is left unmodified.
func (s *Subgraph) Merge(other *Subgraph) {
	for n := range other.nodes {
		s.add(n)
	}
}

func (s *Subgraph) roots() []*Node {
	var rs []*Node
	for n := range s.nodes {
		if s.filterCount(n.deps) == 0 {
			rs = append(rs, n)
		}
	}
	return rs
}

// Roots returns every member node whose deps ∩ subgraph is empty.
func (s *Subgraph) Roots() []*Node { return s.roots() }

// Leaves returns every member node whose dependers ∩ subgraph is empty.
func (s *Subgraph) Leaves() []*Node {
	var ls []*Node
	for n := range s.nodes {
		if s.filterCount(n.dependers) == 0 {
			ls = append(ls, n)
		}
	}
	return ls
}

func (s *Subgraph) filterCount(set map[*Node]struct{}) int {
	count := 0
	for n := range set {
		if s.Contains(n) {
			count++
		}
	}
	return count
}
