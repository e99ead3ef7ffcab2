// Package dotgraph renders a partitioned dependency graph as Graphviz
// "dot" source for visual inspection: one node per member, edges to
// in-partition dependencies, and khaki-filled stand-ins for
// cross-partition dependencies that are assumed already computed.
package dotgraph
