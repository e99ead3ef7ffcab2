package genwalk

import (
	"math/rand"

	"github.com/rwcarlsen/femloop/internal/depgraph"
)

// Walk performs one random walk starting at n: it samples n's
// transition table by cumulative probability, wires the winning
// dependency edge(s) into the graph (skipping any that would be
// cyclic), then recurses into each newly-wired dependency before
// returning. A node with no transitions is a no-op.
func Walk(m *Matrix, rng *rand.Rand, n *depgraph.Node) {
	deps := m.transitions[n]
	if len(deps) == 0 {
		return
	}

	r := rng.Float64()
	var sum float64
	for _, t := range deps {
		sum += t.prob
		if r > sum {
			continue
		}

		targets, err := m.resolveDeps(n, t.depBase)
		if err != nil {
			return
		}

		var wired []*depgraph.Node
		for _, dep := range targets {
			if dep == n || n.DependsOn(dep) {
				continue
			}
			if err := n.Needs(dep); err != nil {
				continue
			}
			wired = append(wired, dep)
		}
		for _, dep := range wired {
			Walk(m, rng, dep)
		}
		return
	}
}

// WalkMany runs nWalks independent walks from start against the same
// rng, the way buildGraph repeatedly re-enters walkTransitions to widen
// the set of activated edges across a fixed number of attempts.
func WalkMany(m *Matrix, rng *rand.Rand, start *depgraph.Node, nWalks int) {
	for i := 0; i < nWalks; i++ {
		Walk(m, rng, start)
	}
}
