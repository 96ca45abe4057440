package treesitter

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
)

// Language describes the grammar and node vocabulary the slice engine
// needs for one source language.
type Language struct {
	Name    string
	grammar func() *sitter.Language

	// functions open a new slicing scope. named is the subset that carries
	// a name (closures and lambdas are scopes but not owners).
	functions map[string]bool
	named     map[string]bool
	// owners are the type declarations a method can belong to (Java).
	owners map[string]bool
	// statements are the units a slice is made of.
	statements map[string]bool
	// clauses are expressions that count as statements when they sit
	// directly in a loop header, such as the i++ of a Java for.
	clauses map[string]map[string]bool
	// params are the field names holding parameter lists on a function.
	params []string
	// writes returns the identifier nodes a statement assigns.
	writes func(stmt *sitter.Node) []*sitter.Node
	// compound reports statements whose targets are also read (x += 1).
	compound func(stmt *sitter.Node, src []byte) bool
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var goLanguage = &Language{
	Name:      "go",
	grammar:   golang.GetLanguage,
	functions: set("function_declaration", "method_declaration", "func_literal"),
	named:     set("function_declaration", "method_declaration"),
	statements: set(
		"short_var_declaration", "assignment_statement", "inc_statement",
		"dec_statement", "var_declaration", "return_statement", "if_statement",
		"for_statement", "expression_statement", "expression_switch_statement",
		"type_switch_statement", "send_statement", "go_statement",
		"defer_statement",
	),
	params:   []string{"receiver", "parameters"},
	writes:   goWrites,
	compound: goCompound,
}

var javaLanguage = &Language{
	Name:      "java",
	grammar:   java.GetLanguage,
	functions: set("method_declaration", "constructor_declaration", "lambda_expression"),
	named:     set("method_declaration", "constructor_declaration"),
	owners:    set("class_declaration", "interface_declaration", "enum_declaration", "record_declaration"),
	statements: set(
		"local_variable_declaration", "expression_statement", "return_statement",
		"if_statement", "while_statement", "for_statement",
		"enhanced_for_statement", "do_statement", "throw_statement",
		"switch_expression", "yield_statement",
	),
	clauses: map[string]map[string]bool{
		"for_statement": set("assignment_expression", "update_expression"),
	},
	params:   []string{"parameters"},
	writes:   javaWrites,
	compound: javaCompound,
}

// isStatement reports whether child, found directly under parent, is a
// slicing unit.
func (l *Language) isStatement(parent, child *sitter.Node) bool {
	if l.statements[child.Type()] {
		return true
	}
	return l.clauses[parent.Type()][child.Type()]
}

var languagesByExt = map[string]*Language{
	".go":   goLanguage,
	".java": javaLanguage,
}

// LanguageFor returns the language for path's extension, or nil.
func LanguageFor(path string) *Language {
	return languagesByExt[strings.ToLower(filepath.Ext(path))]
}

// Supported returns true if the file extension has a tree-sitter grammar.
func Supported(path string) bool {
	return LanguageFor(path) != nil
}
