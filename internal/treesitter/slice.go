package treesitter

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/reach/internal/slice"
)

// Direction selects which way data flow is followed.
type Direction int

const (
	// Forward follows a value to the statements that read it.
	Forward Direction = iota
	// Backward follows a value to the statements that wrote it.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection parses "forward" or "backward".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	}
	return Forward, fmt.Errorf("unknown slice direction %q", s)
}

// Element is the source handle behind a slice node.
type Element struct {
	Path     string
	Language string
	Kind     string // tree-sitter node type
	Line     int    // 1-indexed
	EndLine  int
	Function string // enclosing named function, "" at top level
	Receiver string // method receiver or enclosing class
}

func (e *Element) String() string {
	return fmt.Sprintf("%s (%s:%d)", e.Kind, filepath.Base(e.Path), e.Line)
}

// Owner renders the enclosing type and method as Type#method. Missing
// parts render as "unknown".
func (e *Element) Owner() string {
	recv, fn := e.Receiver, e.Function
	if recv == "" {
		recv = "unknown"
	}
	if fn == "" {
		fn = "unknown"
	}
	return recv + "#" + fn
}

// statement is one slicing unit with its def/use sets.
type statement struct {
	elem   *Element
	text   string
	start  uint32
	end    uint32
	header bool
	writes map[string]bool
	reads  map[string]bool
}

// Graph is the statement graph of one function. Nodes are created once per
// statement so that identity is stable across Children calls.
type Graph struct {
	dir   Direction
	stmts []*statement
	nodes map[*statement]*SliceNode
}

// SliceNode is a slice.Node backed by a statement.
type SliceNode struct {
	g        *Graph
	st       *statement
	seed     map[string]bool // overrides the statement's own def/use set at the root
	children []slice.Node
	built    bool
}

var _ slice.Node = (*SliceNode)(nil)

// Text returns the first line of the statement.
func (n *SliceNode) Text() string { return n.st.text }

// Element returns the statement's source handle.
func (n *SliceNode) Element() fmt.Stringer { return n.st.elem }

// Source is Element without the interface wrapping.
func (n *SliceNode) Source() *Element { return n.st.elem }

// Children returns the statements data flows to (forward) or from
// (backward), in source order.
func (n *SliceNode) Children() []slice.Node {
	if n.built {
		return n.children
	}
	n.built = true
	for _, other := range n.g.stmts {
		if n.g.linked(n, other) {
			n.children = append(n.children, n.g.node(other))
		}
	}
	return n.children
}

func (g *Graph) node(st *statement) *SliceNode {
	if n, ok := g.nodes[st]; ok {
		return n
	}
	n := &SliceNode{g: g, st: st}
	g.nodes[st] = n
	return n
}

func (g *Graph) linked(from *SliceNode, to *statement) bool {
	if g.dir == Forward {
		defs := from.st.writes
		if from.seed != nil {
			defs = from.seed
		}
		return intersects(defs, to.reads)
	}
	uses := from.st.reads
	if from.seed != nil {
		uses = from.seed
	}
	return intersects(uses, to.writes)
}

func intersects(a, b map[string]bool) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}

// Slice builds the slice rooted at the statement containing id, following
// the identifier's value in dir. The result only covers the function that
// encloses id.
func (f *File) Slice(id *Ident, dir Direction) (*SliceNode, error) {
	fn := f.enclosingFunction(id.node)
	if fn == nil {
		return nil, fmt.Errorf("%w: %s is not inside a function", ErrNoExpression, id.Name)
	}

	g := &Graph{dir: dir, nodes: make(map[*statement]*SliceNode)}
	g.stmts = f.statements(fn)

	var root *statement
	for _, st := range g.stmts {
		if st.start > id.node.StartByte() || st.end < id.node.EndByte() {
			continue
		}
		if root == nil || root.header || (!st.header && st.end-st.start < root.end-root.start) {
			root = st
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoExpression, id.Name)
	}

	n := g.node(root)
	n.seed = map[string]bool{id.Name: true}
	return n, nil
}

func (f *File) enclosingFunction(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if f.Lang.functions[p.Type()] {
			return p
		}
	}
	return nil
}

// statements returns fn's header followed by every statement in its body
// in source order. Nested closures are left to their own scope.
func (f *File) statements(fn *sitter.Node) []*statement {
	name, recv := f.owner(fn)
	mk := func(n *sitter.Node) *Element {
		return &Element{
			Path:     f.Path,
			Language: f.Lang.Name,
			Kind:     n.Type(),
			Line:     int(n.StartPoint().Row) + 1,
			EndLine:  int(n.EndPoint().Row) + 1,
			Function: name,
			Receiver: recv,
		}
	}

	header := &statement{
		elem:   mk(fn),
		text:   firstLine(fn.Content(f.src)),
		start:  fn.StartByte(),
		end:    fn.EndByte(),
		header: true,
		writes: make(map[string]bool),
		reads:  make(map[string]bool),
	}
	for _, field := range f.Lang.params {
		for _, id := range paramIdents(fn.ChildByFieldName(field)) {
			header.writes[id.Content(f.src)] = true
		}
	}
	out := []*statement{header}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for _, c := range children(n) {
			if f.Lang.functions[c.Type()] {
				continue
			}
			if f.Lang.isStatement(n, c) {
				out = append(out, f.statement(c, mk(c)))
			}
			walk(c)
		}
	}
	if body := fn.ChildByFieldName("body"); body != nil {
		walk(body)
	}
	return out
}

func (f *File) statement(n *sitter.Node, elem *Element) *statement {
	st := &statement{
		elem:   elem,
		text:   firstLine(n.Content(f.src)),
		start:  n.StartByte(),
		end:    n.EndByte(),
		writes: make(map[string]bool),
		reads:  make(map[string]bool),
	}
	targets := make(map[uint32]bool)
	for _, id := range f.Lang.writes(n) {
		st.writes[id.Content(f.src)] = true
		targets[id.StartByte()] = true
	}
	if f.Lang.compound(n, f.src) {
		for name := range st.writes {
			st.reads[name] = true
		}
	}

	var walk func(c *sitter.Node)
	walk = func(c *sitter.Node) {
		for _, cc := range children(c) {
			t := cc.Type()
			if f.Lang.isStatement(c, cc) || f.Lang.functions[t] {
				continue
			}
			if t == "identifier" && !targets[cc.StartByte()] {
				st.reads[cc.Content(f.src)] = true
			}
			walk(cc)
		}
	}
	walk(n)
	return st
}

// owner returns the nearest named function enclosing fn (fn included) and
// the type it belongs to: the method receiver in Go, the class in Java, or
// the package name for Go functions. Statements in closures and lambdas
// belong to the method around them.
func (f *File) owner(fn *sitter.Node) (name, recv string) {
	n := fn
	for n != nil && !f.Lang.named[n.Type()] {
		n = n.Parent()
	}
	if n != nil {
		if nm := n.ChildByFieldName("name"); nm != nil {
			name = nm.Content(f.src)
		}
		if r := n.ChildByFieldName("receiver"); r != nil {
			recv = receiverType(r, f.src)
		}
	}
	if recv != "" {
		return name, recv
	}
	if f.Lang.owners != nil {
		for p := fn.Parent(); p != nil; p = p.Parent() {
			if f.Lang.owners[p.Type()] {
				if nm := p.ChildByFieldName("name"); nm != nil {
					recv = nm.Content(f.src)
				}
				return name, recv
			}
		}
		return name, ""
	}
	return name, f.packageName()
}

// receiverType returns the bare type name of a Go receiver list, without
// pointer or type parameters.
func receiverType(list *sitter.Node, src []byte) string {
	for _, decl := range children(list) {
		t := decl.ChildByFieldName("type")
		if t == nil {
			continue
		}
		name := strings.TrimLeft(t.Content(src), "*")
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		return strings.TrimSpace(name)
	}
	return ""
}

func (f *File) packageName() string {
	root := f.tree.RootNode()
	for _, c := range children(root) {
		if c.Type() == "package_clause" {
			if nc := c.NamedChild(0); nc != nil {
				return nc.Content(f.src)
			}
		}
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
