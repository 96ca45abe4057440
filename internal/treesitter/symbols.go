// Package treesitter parses Go and Java sources with tree-sitter. It
// extracts top-level symbols for project search and builds intra-function
// data-flow slices for the reachability handler.
package treesitter

// SymbolKind classifies extracted symbols.
type SymbolKind int

const (
	KindPackage SymbolKind = iota
	KindFunction
	KindMethod
	KindType
	KindStruct
	KindInterface
	KindClass
	KindConst
	KindVar
	KindField
)

// Symbol is a declaration found in a source file.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Signature string // first line of the declaration
	StartLine int    // 1-indexed
	EndLine   int    // 1-indexed
	Receiver  string // method receiver or enclosing class
	Children  []Symbol
}

func (k SymbolKind) String() string {
	switch k {
	case KindPackage:
		return "pkg"
	case KindFunction:
		return "func"
	case KindMethod:
		return "method"
	case KindType:
		return "type"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindClass:
		return "class"
	case KindConst:
		return "const"
	case KindVar:
		return "var"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// Walk calls fn for every symbol in syms and their children, depth first.
func Walk(syms []Symbol, fn func(Symbol)) {
	for _, s := range syms {
		fn(s)
		Walk(s.Children, fn)
	}
}
