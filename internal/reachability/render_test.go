package reachability

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"

	"github.com/xonecas/reach/internal/treesitter"
)

func sampleReport() *Report {
	entry := func(label, text string, line int) Entry {
		return Entry{Label: label, Text: text, Line: line, Owner: "main#sum"}
	}
	return &Report{
		Path:      "sum.go",
		Line:      6,
		Language:  "go",
		Question:  Question{Kind: VariableMutation, Subject: "total"},
		Direction: treesitter.Forward,
		Strategy:  "pattern",
		MaxDepth:  10,
		Entries: []Entry{
			entry("Currently unrecognized structure: total := 0", "total := 0", 6),
			entry("Currently unrecognized structure: total += x", "total += x", 8),
			entry("Conditional statement: if total > 100 {", "if total > 100 {", 10),
			entry("Currently unrecognized structure: fmt.Println(total)", "fmt.Println(total)", 13),
			entry("Return statement: return total", "return total", 14),
		},
	}
}

func TestRender(t *testing.T) {
	var b strings.Builder
	if err := sampleReport().Render(&b, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	golden.RequireEqual(t, b.String())
}

func TestRender_ColorStripsToPlain(t *testing.T) {
	var plain, color strings.Builder
	rep := sampleReport()
	if err := rep.Render(&plain, RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := rep.Render(&color, RenderOptions{Color: true, Theme: "github-dark"}); err != nil {
		t.Fatal(err)
	}
	if color.String() == plain.String() {
		t.Fatal("expected ANSI styling in colour output")
	}
	if got := ansi.Strip(color.String()); got != plain.String() {
		t.Errorf("stripped colour output differs:\n%s\nwant:\n%s", got, plain.String())
	}
}
