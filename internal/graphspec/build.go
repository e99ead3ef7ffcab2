package graphspec

import (
	"fmt"

	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/looptype"
)

// Build materializes spec into a depgraph.Graph: one node per NodeSpec,
// wired by name via depends_on, with Prepare called once every edge is
// in place so the returned graph is immediately ready for
// partition.ComputePartitions.
func Build(spec *GraphSpec) (*depgraph.Graph, error) {
	g := depgraph.New()
	byName := make(map[string]*depgraph.Node, len(spec.Nodes))

	for _, ns := range spec.Nodes {
		byName[ns.Name] = g.Create(ns.Name, ns.Cached, ns.Reducing, looptype.New(ns.Category, ns.Block))
	}

	for _, ns := range spec.Nodes {
		n := byName[ns.Name]
		for _, depName := range ns.DependsOn {
			dep, ok := byName[depName]
			if !ok {
				return nil, fmt.Errorf("graphspec: node %q depends_on %q: %w", ns.Name, depName, ErrUnknownDependency)
			}
			if err := n.Needs(dep); err != nil {
				return nil, fmt.Errorf("graphspec: node %q depends_on %q: %w", ns.Name, depName, err)
			}
		}
	}

	g.Prepare()
	return g, nil
}
