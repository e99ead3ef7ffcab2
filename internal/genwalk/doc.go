// Package genwalk generates synthetic dependency graphs for stress
// testing the scheduler and value store: a base name expands into one
// concrete node per (category, block) pair, dependencies between base
// names are declared once, and a random walk from a start node
// activates a subset of those dependencies edge by edge. It is a test
// fixture generator, never imported by non-test code.
package genwalk
