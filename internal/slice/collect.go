package slice

import (
	"errors"
	"reflect"
)

// DefaultMaxDepth is the hop limit used when callers have no preference.
const DefaultMaxDepth = 10

var (
	// ErrNilRoot is returned when Collect is called without a root.
	ErrNilRoot = errors.New("slice: nil root node")
	// ErrNegativeDepth is returned for a negative hop limit.
	ErrNegativeDepth = errors.New("slice: negative max depth")
)

// Collect returns the nodes reachable from root within maxDepth hops.
//
// The root is always first. Children are visited depth-first in engine
// order and each node appears once. A node first reached deep in one
// branch is expanded again if a later branch reaches it with more hops
// to spare, so the result never depends on which branch got there first.
func Collect(root Node, maxDepth int) ([]Node, error) {
	if isNil(root) {
		return nil, ErrNilRoot
	}
	if maxDepth < 0 {
		return nil, ErrNegativeDepth
	}

	c := &collector{
		max:   maxDepth,
		depth: make(map[Node]int),
	}
	c.visit(root, 0)
	return c.acc, nil
}

type collector struct {
	max   int
	acc   []Node
	depth map[Node]int // shallowest depth each node was expanded at
}

func (c *collector) visit(n Node, d int) {
	if _, seen := c.depth[n]; !seen {
		c.acc = append(c.acc, n)
	}
	c.depth[n] = d
	if d >= c.max {
		return
	}
	for _, child := range n.Children() {
		if isNil(child) {
			continue
		}
		if prev, seen := c.depth[child]; seen && prev <= d+1 {
			continue
		}
		c.visit(child, d+1)
	}
}

// isNil also catches typed nil pointers wrapped in the interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
