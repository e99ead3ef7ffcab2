// Package partition turns a prepared dependency graph into an ordered
// sequence of mesh sweeps. It buckets nodes by loop number and LoopType,
// duplicates uncached dependencies into every sweep that needs them,
// splits each bucket into its weakly-connected components, optionally
// merges compatible sibling sweeps back together, and finally produces a
// per-sweep topological execution order.
package partition
