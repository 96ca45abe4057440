package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// children returns the named children of n.
func children(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// lvalueRoot returns the variable an assignment target ultimately writes:
// x for x, x[i], x.f, *x and (x).
func lvalueRoot(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "identifier":
			return n
		case "index_expression", "selector_expression", "unary_expression",
			"parenthesized_expression", "field_access", "array_access":
			n = n.NamedChild(0)
		default:
			return nil
		}
	}
	return nil
}

// targets maps every expression in list to its lvalue root.
func targets(list *sitter.Node) []*sitter.Node {
	if list == nil {
		return nil
	}
	if list.Type() != "expression_list" {
		if id := lvalueRoot(list); id != nil {
			return []*sitter.Node{id}
		}
		return nil
	}
	var out []*sitter.Node
	for _, c := range children(list) {
		if id := lvalueRoot(c); id != nil {
			out = append(out, id)
		}
	}
	return out
}

// directIdents returns the identifier children of n, which is how Go
// parameter, var and const specs list their names.
func directIdents(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range children(n) {
		if c.Type() == "identifier" {
			out = append(out, c)
		}
	}
	return out
}

func goWrites(stmt *sitter.Node) []*sitter.Node {
	switch stmt.Type() {
	case "short_var_declaration", "assignment_statement":
		return targets(stmt.ChildByFieldName("left"))
	case "inc_statement", "dec_statement":
		return targets(stmt.NamedChild(0))
	case "var_declaration":
		var out []*sitter.Node
		for _, spec := range children(stmt) {
			switch spec.Type() {
			case "var_spec":
				out = append(out, directIdents(spec)...)
			case "var_spec_list":
				for _, inner := range children(spec) {
					out = append(out, directIdents(inner)...)
				}
			}
		}
		return out
	case "for_statement":
		for _, c := range children(stmt) {
			if c.Type() == "range_clause" {
				return targets(c.ChildByFieldName("left"))
			}
		}
	}
	return nil
}

func goCompound(stmt *sitter.Node, src []byte) bool {
	switch stmt.Type() {
	case "inc_statement", "dec_statement":
		return true
	case "assignment_statement":
		return isCompoundOperator(stmt, src)
	}
	return false
}

func javaWrites(stmt *sitter.Node) []*sitter.Node {
	switch stmt.Type() {
	case "local_variable_declaration":
		var out []*sitter.Node
		for _, c := range children(stmt) {
			if c.Type() == "variable_declarator" {
				if name := c.ChildByFieldName("name"); name != nil {
					out = append(out, name)
				}
			}
		}
		return out
	case "enhanced_for_statement":
		if name := stmt.ChildByFieldName("name"); name != nil {
			return []*sitter.Node{name}
		}
	case "expression_statement":
		if expr := stmt.NamedChild(0); expr != nil {
			return javaExprWrites(expr)
		}
	case "assignment_expression", "update_expression":
		return javaExprWrites(stmt)
	}
	return nil
}

// javaExprWrites returns the variable an assignment or ++/-- expression
// writes.
func javaExprWrites(expr *sitter.Node) []*sitter.Node {
	switch expr.Type() {
	case "assignment_expression":
		return targets(expr.ChildByFieldName("left"))
	case "update_expression":
		return targets(expr.NamedChild(0))
	}
	return nil
}

func javaCompound(stmt *sitter.Node, src []byte) bool {
	expr := stmt
	if stmt.Type() == "expression_statement" {
		expr = stmt.NamedChild(0)
	}
	if expr == nil {
		return false
	}
	switch expr.Type() {
	case "update_expression":
		return true
	case "assignment_expression":
		return isCompoundOperator(expr, src)
	}
	return false
}

// isCompoundOperator reports whether the assignment n uses an operator
// such as += that also reads its target.
func isCompoundOperator(n *sitter.Node, src []byte) bool {
	if op := n.ChildByFieldName("operator"); op != nil {
		return compoundToken(op.Content(src))
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); !c.IsNamed() && compoundToken(c.Content(src)) {
			return true
		}
	}
	return false
}

func compoundToken(text string) bool {
	switch text {
	case "=", ":=", "==", "!=", "<=", ">=":
		return false
	}
	return strings.HasSuffix(text, "=")
}

// paramIdents returns the names declared by a parameter list.
func paramIdents(list *sitter.Node) []*sitter.Node {
	if list == nil {
		return nil
	}
	if list.Type() == "identifier" {
		// Java lambda with a single bare parameter.
		return []*sitter.Node{list}
	}
	var out []*sitter.Node
	out = append(out, directIdents(list)...)
	for _, decl := range children(list) {
		out = append(out, directIdents(decl)...)
		for _, c := range children(decl) {
			if c.Type() == "variable_declarator" {
				if name := c.ChildByFieldName("name"); name != nil {
					out = append(out, name)
				}
			}
		}
	}
	return out
}
