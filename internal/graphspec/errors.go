package graphspec

import "errors"

var (
	// ErrUnknownCategory is returned when a node block's category
	// attribute does not name a recognized sweep category.
	ErrUnknownCategory = errors.New("graphspec: unknown category")

	// ErrUnknownDependency is returned when a node's depends_on list
	// names a node that was never declared in the document.
	ErrUnknownDependency = errors.New("graphspec: unknown dependency")

	// ErrDuplicateNode is returned when two node blocks share a name.
	ErrDuplicateNode = errors.New("graphspec: duplicate node name")
)
