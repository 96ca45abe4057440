// Package slice bounds and describes data-flow slices produced by an
// analysis engine. It knows nothing about the engine itself: nodes are
// read through the Node interface and never mutated.
package slice

import "fmt"

// Node is one element of a slice graph.
//
// Implementations must be comparable and should be pointer types: node
// identity is interface equality, and the same node reached twice must
// compare equal.
type Node interface {
	// Children returns the nodes this node flows into (or from), in the
	// order the engine produced them. May contain ancestors.
	Children() []Node
	// Text is the textual rendering of the underlying element.
	Text() string
	// Element returns the underlying source element, or nil if absent.
	Element() fmt.Stringer
}
