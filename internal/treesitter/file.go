package treesitter

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

var (
	// ErrUnsupportedLanguage is returned for files without a grammar.
	ErrUnsupportedLanguage = errors.New("treesitter: unsupported language")
	// ErrNoExpression is returned when the caret is not on an identifier
	// inside a function.
	ErrNoExpression = errors.New("treesitter: no expression under caret")
)

// File is a parsed source file. Close releases the syntax tree; slices
// built from the file stay valid after Close.
type File struct {
	Path string
	Lang *Language

	src  []byte
	tree *sitter.Tree
}

// OpenFile reads and parses the file at path.
func OpenFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, path, src)
}

// Parse parses src using the grammar selected by path's extension.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	lang := LanguageFor(path)
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &File{Path: path, Lang: lang, src: src, tree: tree}, nil
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Ident is an identifier selected in a file.
type Ident struct {
	Name string
	Line int // 1-indexed
	node *sitter.Node
	file *File
}

// IdentAt returns the identifier at the 1-indexed line and column.
func (f *File) IdentAt(line, col int) (*Ident, error) {
	if line < 1 || col < 1 {
		return nil, fmt.Errorf("%w: invalid position %d:%d", ErrNoExpression, line, col)
	}
	p := sitter.Point{Row: uint32(line - 1), Column: uint32(col - 1)}
	n := f.tree.RootNode().NamedDescendantForPointRange(p, p)
	if n == nil || n.Type() != "identifier" {
		return nil, fmt.Errorf("%w at %s:%d:%d", ErrNoExpression, f.Path, line, col)
	}
	return &Ident{Name: n.Content(f.src), Line: line, node: n, file: f}, nil
}

// IsCallArgument reports whether the identifier sits in the argument list
// of a call, as in foo(x) or obj.foo(x). The callee itself does not count.
func (id *Ident) IsCallArgument() bool {
	for n := id.node.Parent(); n != nil; n = n.Parent() {
		if id.file.Lang.statements[n.Type()] || id.file.Lang.functions[n.Type()] {
			return false
		}
		if n.Type() == "argument_list" {
			return true
		}
	}
	return false
}

// IsLocalDeclaration reports whether the identifier is the name being
// declared by a local variable declaration.
func (id *Ident) IsLocalDeclaration() bool {
	parent := id.node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "variable_declarator":
		grand := parent.Parent()
		return grand != nil && grand.Type() == "local_variable_declaration" && sameNode(parent.ChildByFieldName("name"), id.node)
	case "var_spec":
		return true
	case "expression_list":
		grand := parent.Parent()
		return grand != nil && grand.Type() == "short_var_declaration" && sameNode(grand.ChildByFieldName("left"), parent)
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
