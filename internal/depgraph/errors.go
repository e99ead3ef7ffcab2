package depgraph

import "errors"

var (
	// ErrCyclicGraph is returned by Node.Needs when adding the requested
	// edge would introduce a cycle into the dependency graph.
	ErrCyclicGraph = errors.New("depgraph: edge would introduce a cycle")
	// ErrSelfDependency is returned by Node.Needs when a node is asked
	// to depend on itself.
	ErrSelfDependency = errors.New("depgraph: a node cannot depend on itself")
	// ErrIDAlreadySet is returned by Node.setID when called on a node
	// that already has an id.
	ErrIDAlreadySet = errors.New("depgraph: node id set multiple times")
	// ErrInvalidID is returned by Node.setID when given a negative id.
	ErrInvalidID = errors.New("depgraph: node id must be non-negative")
	// ErrNotPrepared is returned by Node.Loop when queried without an
	// intervening call to Graph.Prepare since the last edge mutation.
	ErrNotPrepared = errors.New("depgraph: graph loop numbers not prepared")
	// ErrIncompatibleDependency names a non-cached node depending on a
	// non-cached node of a different LoopType, which would leave nothing
	// to bridge the two sweeps. Node.Needs does not check for this case
	// and no function in this package returns this error.
	ErrIncompatibleDependency = errors.New("depgraph: non-cached cross-looptype dependency has no bridge")
)
