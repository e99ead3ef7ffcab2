package dotgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/looptype"
)

// loopTypeStr renders a LoopType the same way Node.LoopType().String()
// does; kept as its own function so callers reading a dot dump alongside
// the C++ source recognize the name from show.cc.
func loopTypeStr(lt looptype.LoopType) string {
	return lt.String()
}

// nodeLabel builds the multi-line label dot draws inside a node's box:
// its name, which partition it belongs to, its LoopType, and its
// cached/reducing flags.
func nodeLabel(g *depgraph.Subgraph, n *depgraph.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, `%s on partition %d\n`, n.Name(), g.ID())
	b.WriteString(loopTypeStr(n.LoopType()))
	if n.IsCached() || n.IsReducing() {
		b.WriteString(`\n(`)
		if n.IsCached() {
			b.WriteString("cached")
			if n.IsReducing() {
				b.WriteString(",")
			}
		}
		if n.IsReducing() {
			b.WriteString("reducing")
		}
		b.WriteString(")")
	}
	return b.String()
}

// dotEdge renders one src -> dst edge. A nil dst renders src as an
// island node. A dst outside g is drawn as a khaki-filled node, marking
// it as a value expected to already be computed by an earlier sweep.
func dotEdge(g *depgraph.Subgraph, src, dst *depgraph.Node) string {
	if dst == nil {
		return fmt.Sprintf("%q;\n", nodeLabel(g, src))
	}
	if g.Contains(dst) {
		return fmt.Sprintf("%q -> %q;\n", nodeLabel(g, src), nodeLabel(g, dst))
	}
	dstLabel := fmt.Sprintf("%q", nodeLabel(g, dst))
	return fmt.Sprintf("%q -> %s;\n%s [style=filled, fillcolor=khaki];\n", nodeLabel(g, src), dstLabel, dstLabel)
}

// dotConnections renders every edge and island node in g, in
// deterministic (name-sorted) order.
func dotConnections(g *depgraph.Subgraph) string {
	var b strings.Builder
	for _, n := range sortedNodes(g) {
		island := true
		for _, dep := range sortedSet(n.Deps()) {
			island = false
			b.WriteString(dotEdge(g, n, dep))
		}
		for _, dep := range sortedSet(n.Dependers()) {
			if g.Contains(dep) {
				island = false
			}
		}
		if island {
			b.WriteString(dotEdge(g, n, nil))
		}
	}
	return b.String()
}

// DotGraph renders a single subgraph as a complete dot document.
func DotGraph(g *depgraph.Subgraph) string {
	var b strings.Builder
	b.WriteString("digraph g {\n")
	b.WriteString(dotConnections(g))
	b.WriteString("}\n")
	return b.String()
}

// DotGraphMerged renders every partition as its own dot "subgraph"
// block within one document, the way a merged execution plan is
// inspected as a whole.
func DotGraphMerged(graphs []*depgraph.Subgraph) string {
	var b strings.Builder
	b.WriteString("digraph g {\n")
	for i, g := range graphs {
		fmt.Fprintf(&b, "subgraph g%d {\n", i+1)
		b.WriteString(dotConnections(g))
		b.WriteString("}\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func sortedNodes(g *depgraph.Subgraph) []*depgraph.Node {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name() < nodes[j].Name() })
	return nodes
}

func sortedSet(set map[*depgraph.Node]struct{}) []*depgraph.Node {
	out := make([]*depgraph.Node, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
