package treesitter

import (
	"context"
	"errors"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParseFile reads and parses a file, returning its declarations.
func ParseFile(path string) ([]Symbol, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(path, src)
}

// ParseSource returns the declarations in src. Unsupported languages yield
// no symbols and no error.
func ParseSource(path string, src []byte) ([]Symbol, error) {
	f, err := Parse(context.Background(), path, src)
	if errors.Is(err, ErrUnsupportedLanguage) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Symbols(), nil
}

// Symbols returns the file's top-level declarations.
func (f *File) Symbols() []Symbol {
	root := f.tree.RootNode()
	if f.Lang == javaLanguage {
		return f.javaDecls(root, "")
	}
	return f.goDecls(root)
}

func (f *File) symbol(n, name *sitter.Node, kind SymbolKind) Symbol {
	s := Symbol{
		Kind:      kind,
		Signature: firstLine(n.Content(f.src)),
		StartLine: int(n.StartPoint().Row) + 1,
		EndLine:   int(n.EndPoint().Row) + 1,
	}
	if name != nil {
		s.Name = name.Content(f.src)
	}
	return s
}

func (f *File) goDecls(root *sitter.Node) []Symbol {
	var syms []Symbol
	for _, c := range children(root) {
		switch c.Type() {
		case "package_clause":
			syms = append(syms, f.symbol(c, c.NamedChild(0), KindPackage))
		case "function_declaration":
			syms = append(syms, f.symbol(c, c.ChildByFieldName("name"), KindFunction))
		case "method_declaration":
			s := f.symbol(c, c.ChildByFieldName("name"), KindMethod)
			if r := c.ChildByFieldName("receiver"); r != nil {
				s.Receiver = receiverType(r, f.src)
			}
			syms = append(syms, s)
		case "type_declaration":
			for _, spec := range children(c) {
				if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
					continue
				}
				kind := KindType
				if t := spec.ChildByFieldName("type"); t != nil {
					switch t.Type() {
					case "struct_type":
						kind = KindStruct
					case "interface_type":
						kind = KindInterface
					}
				}
				syms = append(syms, f.symbol(spec, spec.ChildByFieldName("name"), kind))
			}
		case "const_declaration", "var_declaration":
			kind := KindVar
			if c.Type() == "const_declaration" {
				kind = KindConst
			}
			for _, spec := range children(c) {
				for _, id := range directIdents(spec) {
					syms = append(syms, f.symbol(spec, id, kind))
				}
			}
		}
	}
	return syms
}

func (f *File) javaDecls(n *sitter.Node, owner string) []Symbol {
	var syms []Symbol
	for _, c := range children(n) {
		switch c.Type() {
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			kind := KindClass
			if c.Type() == "interface_declaration" {
				kind = KindInterface
			}
			s := f.symbol(c, c.ChildByFieldName("name"), kind)
			s.Receiver = owner
			if body := c.ChildByFieldName("body"); body != nil {
				s.Children = f.javaDecls(body, s.Name)
			}
			syms = append(syms, s)
		case "method_declaration", "constructor_declaration":
			s := f.symbol(c, c.ChildByFieldName("name"), KindMethod)
			s.Receiver = owner
			syms = append(syms, s)
		case "field_declaration":
			for _, d := range children(c) {
				if d.Type() == "variable_declarator" {
					s := f.symbol(c, d.ChildByFieldName("name"), KindField)
					s.Receiver = owner
					syms = append(syms, s)
				}
			}
		}
	}
	return syms
}
