// Package depgraph implements the dependency-graph primitives the
// scheduler operates on: Node, Graph, Subgraph, and the loop-numbering
// pass that annotates every node with the sweep depth it belongs to.
//
// # Ownership model
//
// A Graph is the sole owner of Node storage; every Node handle returned
// by Graph.Create is a stable pointer valid for the Graph's lifetime.
// Edges are mirrored sets (deps / dependers) mutated only through
// Node.Needs and Node.ClearDeps — never by direct map surgery — so the
// two sides can never drift apart.
//
// # Concurrency
//
// Unlike the teacher's dag.Graph, which guards concurrent mutation with
// a sync.RWMutex because a live worker pool reads and writes it at the
// same time, a depgraph.Graph is built once and then handed to the
// scheduler as an immutable-after-Prepare structure. It is not safe for
// concurrent mutation from multiple goroutines.
package depgraph
