// Package graphspec loads a dependency graph from a declarative HCL
// document: a sequence of "node" blocks naming a node's cache/reduce
// flags, sweep category and block, and the names of the nodes it
// depends on. It is an optional adapter layered on top of depgraph; the
// core graph package has no file format of its own.
package graphspec
