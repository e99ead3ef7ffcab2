package genwalk

import (
	"fmt"

	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/looptype"
)

// AllCategories lists every sweep category other than None, the
// default candidate set AddNodes uses when the caller does not name
// specific categories.
func AllCategories() []looptype.Category {
	return []looptype.Category{
		looptype.Nodal,
		looptype.Face,
		looptype.ElemOnElem,
		looptype.ElemOnElemFV,
		looptype.ElemOnBoundary,
		looptype.ElemOnInternalSide,
	}
}

type transition struct {
	depBase string
	prob    float64
}

// Matrix builds a depgraph.Graph out of named "base" computations, each
// of which expands into one concrete node per requested (category,
// block) pair, plus a table of probabilistic transitions used by Walk
// to activate a random subset of the possible dependency edges.
type Matrix struct {
	Graph *depgraph.Graph

	candidates map[string][]*depgraph.Node
	blocks     map[string]map[int]struct{}
	cats       map[string]map[looptype.Category]struct{}
	cached     map[string]bool
	reducing   map[string]bool

	transitions map[*depgraph.Node][]transition
}

// NewMatrix returns an empty Matrix backed by a fresh Graph.
func NewMatrix() *Matrix {
	return &Matrix{
		Graph:       depgraph.New(),
		candidates:  make(map[string][]*depgraph.Node),
		blocks:      make(map[string]map[int]struct{}),
		cats:        make(map[string]map[looptype.Category]struct{}),
		cached:      make(map[string]bool),
		reducing:    make(map[string]bool),
		transitions: make(map[*depgraph.Node][]transition),
	}
}

// AddNodes registers baseName as a candidate: one node per (cat, block)
// pair in the cartesian product of blocks and cats, or a single
// Category-None node if blocks is empty. An empty cats defaults to
// AllCategories.
func (m *Matrix) AddNodes(baseName string, cached, reducing bool, blocks []int, cats []looptype.Category) error {
	if len(blocks) == 0 && reducing {
		return fmt.Errorf("genwalk: %q: %w", baseName, ErrReducingNeedsBlocks)
	}

	m.cached[baseName] = cached
	m.reducing[baseName] = reducing
	m.blocks[baseName] = make(map[int]struct{})
	m.cats[baseName] = make(map[looptype.Category]struct{})

	if len(blocks) == 0 {
		n := m.Graph.Create(baseName, cached, reducing, looptype.New(looptype.None, 0))
		m.candidates[baseName] = append(m.candidates[baseName], n)
		m.blocks[baseName][0] = struct{}{}
		m.cats[baseName][looptype.None] = struct{}{}
		return nil
	}

	if len(cats) == 0 {
		cats = AllCategories()
	}
	for _, block := range blocks {
		for _, cat := range cats {
			n := m.Graph.Create(baseName, cached, reducing, looptype.New(cat, block))
			m.candidates[baseName] = append(m.candidates[baseName], n)
			m.blocks[baseName][block] = struct{}{}
			m.cats[baseName][cat] = struct{}{}
		}
	}
	return nil
}

func (m *Matrix) findNode(baseName string, cat looptype.Category, block int) (*depgraph.Node, bool) {
	for _, n := range m.candidates[baseName] {
		lt := n.LoopType()
		if lt.Category == cat && lt.Block == block {
			return n, true
		}
	}
	return nil, false
}

// resolveDepCategory picks the category a dependency on depBase should
// be looked up under for a depender using srcCat: srcCat itself if
// depBase has a candidate in that category, otherwise depBase's sole
// category provided depBase is cached (a cached value can bridge into
// any sweep).
func (m *Matrix) resolveDepCategory(depBase string, srcCat looptype.Category) (looptype.Category, error) {
	if _, ok := m.cats[depBase][srcCat]; ok {
		return srcCat, nil
	}
	if !m.cached[depBase] || len(m.cats[depBase]) != 1 {
		return 0, fmt.Errorf("genwalk: dep %q for category %s: %w", depBase, srcCat, ErrIncompatibleCategory)
	}
	for c := range m.cats[depBase] {
		return c, nil
	}
	panic("unreachable")
}

// resolveDeps returns the concrete nodes src should depend on for
// depBase: every block of depBase if depBase is reducing, otherwise
// just the node at src's own block.
func (m *Matrix) resolveDeps(src *depgraph.Node, depBase string) ([]*depgraph.Node, error) {
	srcLoop := src.LoopType()
	dstCat, err := m.resolveDepCategory(depBase, srcLoop.Category)
	if err != nil {
		return nil, err
	}

	if m.reducing[depBase] {
		var deps []*depgraph.Node
		for block := range m.blocks[depBase] {
			n, ok := m.findNode(depBase, dstCat, block)
			if ok {
				deps = append(deps, n)
			}
		}
		return deps, nil
	}

	n, ok := m.findNode(depBase, dstCat, srcLoop.Block)
	if !ok {
		return nil, fmt.Errorf("genwalk: dep %q at block %d: %w", depBase, srcLoop.Block, ErrMissingBlock)
	}
	return []*depgraph.Node{n}, nil
}

// BindDep wires every concrete node of nodeBase to its resolved
// dependency node(s) of depBase, skipping edges already implied by an
// existing dependency path. An edge that would introduce a cycle fails
// with depgraph.ErrCyclicGraph; edges wired before it are kept.
func (m *Matrix) BindDep(nodeBase, depBase string) error {
	if _, ok := m.cats[nodeBase]; !ok {
		return fmt.Errorf("genwalk: %q: %w", nodeBase, ErrUnknownBase)
	}
	if _, ok := m.cats[depBase]; !ok {
		return fmt.Errorf("genwalk: %q: %w", depBase, ErrUnknownBase)
	}
	for _, src := range m.candidates[nodeBase] {
		deps, err := m.resolveDeps(src, depBase)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			if src.DependsOn(dep) || dep == src {
				continue
			}
			if err := src.Needs(dep); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddTransition records a probability that a random walk sitting at any
// concrete node of nodeBase will step to its resolved depBase
// dependency. It does not itself create graph edges; Walk does that
// lazily, the way the original generator keeps candidate transitions
// separate from committed structure until a walk actually visits them.
func (m *Matrix) AddTransition(nodeBase, depBase string, probability float64) error {
	if _, ok := m.cats[nodeBase]; !ok {
		return fmt.Errorf("genwalk: %q: %w", nodeBase, ErrUnknownBase)
	}
	if _, ok := m.cats[depBase]; !ok {
		return fmt.Errorf("genwalk: %q: %w", depBase, ErrUnknownBase)
	}
	for _, src := range m.candidates[nodeBase] {
		m.transitions[src] = append(m.transitions[src], transition{depBase: depBase, prob: probability})
	}
	return nil
}
