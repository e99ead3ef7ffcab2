package graphspec

import (
	"fmt"
	"strings"

	"github.com/rwcarlsen/femloop/internal/looptype"
)

// NodeSpec is the decoded, format-agnostic form of one "node" block.
type NodeSpec struct {
	Name      string
	Cached    bool
	Reducing  bool
	Category  looptype.Category
	Block     int
	DependsOn []string
}

// GraphSpec is a complete document: every node block it declared, in
// file order.
type GraphSpec struct {
	Nodes []*NodeSpec
}

// categoryNames maps the lowercase attribute spelling accepted in a
// node block's category attribute to its looptype.Category. An absent
// category attribute defaults to looptype.None.
var categoryNames = map[string]looptype.Category{
	"none":                  looptype.None,
	"nodal":                 looptype.Nodal,
	"face":                  looptype.Face,
	"elem-on-elem":          looptype.ElemOnElem,
	"elem-on-elem-fv":       looptype.ElemOnElemFV,
	"elem-on-boundary":      looptype.ElemOnBoundary,
	"elem-on-internal-side": looptype.ElemOnInternalSide,
}

func parseCategory(s string) (looptype.Category, error) {
	if s == "" {
		return looptype.None, nil
	}
	if cat, ok := categoryNames[strings.ToLower(s)]; ok {
		return cat, nil
	}
	return 0, fmt.Errorf("graphspec: category %q: %w", s, ErrUnknownCategory)
}
