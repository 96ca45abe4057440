package treesitter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xonecas/reach/internal/slice"
)

const countGo = `package main

func count(n int) int {
	x := 0
	for i := 0; i < n; i++ {
		x = x + 1
	}
	return x
}

var g = 1
`

const counterJava = `class Counter {
    int total(int[] xs) {
        int sum = 0;
        for (int v : xs) {
            sum += v;
        }
        return sum;
    }
}
`

func parse(t *testing.T, path, src string) *File {
	t.Helper()
	f, err := Parse(context.Background(), path, []byte(src))
	if err != nil {
		t.Fatalf("Parse(%s): %v", path, err)
	}
	t.Cleanup(f.Close)
	return f
}

func sliceLines(t *testing.T, f *File, line, col int, dir Direction) []int {
	t.Helper()
	id, err := f.IdentAt(line, col)
	if err != nil {
		t.Fatalf("IdentAt(%d,%d): %v", line, col, err)
	}
	root, err := f.Slice(id, dir)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	nodes, err := slice.Collect(root, slice.DefaultMaxDepth)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var lines []int
	for _, n := range nodes {
		lines = append(lines, n.(*SliceNode).Source().Line)
	}
	return lines
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParse_Unsupported(t *testing.T) {
	_, err := Parse(context.Background(), "main.py", []byte("x = 1\n"))
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("err = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestIdentAt(t *testing.T) {
	f := parse(t, "count.go", countGo)

	tests := []struct {
		name      string
		line, col int
		want      string
		wantErr   bool
	}{
		{"declared variable", 4, 2, "x", false},
		{"right hand side", 6, 7, "x", false},
		{"parameter", 3, 12, "n", false},
		{"blank line", 2, 1, "", true},
		{"keyword", 8, 3, "", true},
		{"out of range", 0, 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.IdentAt(tt.line, tt.col)
			if tt.wantErr {
				if !errors.Is(err, ErrNoExpression) {
					t.Fatalf("err = %v, want ErrNoExpression", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("IdentAt: %v", err)
			}
			if id.Name != tt.want {
				t.Errorf("Name = %q, want %q", id.Name, tt.want)
			}
		})
	}
}

func TestIdentClassification(t *testing.T) {
	src := `package main

func run(a int) {
	b := a
	use(b)
	var c int
	c = b
}
`
	f := parse(t, "run.go", src)

	tests := []struct {
		name      string
		line, col int
		local     bool
		argument  bool
	}{
		{"short var", 4, 2, true, false},
		{"read in declaration", 4, 7, false, false},
		{"call argument", 5, 6, false, true},
		{"callee", 5, 2, false, false},
		{"var spec", 6, 6, true, false},
		{"assignment target", 7, 2, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.IdentAt(tt.line, tt.col)
			if err != nil {
				t.Fatalf("IdentAt: %v", err)
			}
			if got := id.IsLocalDeclaration(); got != tt.local {
				t.Errorf("IsLocalDeclaration = %v, want %v", got, tt.local)
			}
			if got := id.IsCallArgument(); got != tt.argument {
				t.Errorf("IsCallArgument = %v, want %v", got, tt.argument)
			}
		})
	}
}

func TestSlice_GoForward(t *testing.T) {
	f := parse(t, "count.go", countGo)
	got := sliceLines(t, f, 4, 2, Forward)
	want := []int{4, 6, 8}
	if !equalInts(got, want) {
		t.Errorf("forward slice lines = %v, want %v", got, want)
	}
}

func TestSlice_GoBackward(t *testing.T) {
	f := parse(t, "count.go", countGo)
	got := sliceLines(t, f, 8, 9, Backward)
	want := []int{8, 4, 6}
	if !equalInts(got, want) {
		t.Errorf("backward slice lines = %v, want %v", got, want)
	}
}

func TestSlice_SelfCycle(t *testing.T) {
	f := parse(t, "count.go", countGo)
	id, err := f.IdentAt(6, 3)
	if err != nil {
		t.Fatalf("IdentAt: %v", err)
	}
	root, err := f.Slice(id, Forward)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}

	// x = x + 1 reads what it writes.
	var self bool
	for _, c := range root.Children() {
		if c == slice.Node(root) {
			self = true
		}
	}
	if !self {
		t.Error("expected the increment to be its own forward child")
	}

	// Children are memoized so identities stay stable.
	first, second := root.Children(), root.Children()
	if len(first) != len(second) || first[0] != second[0] {
		t.Error("Children returned different nodes on repeated calls")
	}
}

func TestSlice_TopLevel(t *testing.T) {
	f := parse(t, "count.go", countGo)
	id, err := f.IdentAt(11, 5)
	if err != nil {
		t.Fatalf("IdentAt: %v", err)
	}
	if _, err := f.Slice(id, Forward); !errors.Is(err, ErrNoExpression) {
		t.Fatalf("err = %v, want ErrNoExpression", err)
	}
}

func TestSlice_Element(t *testing.T) {
	f := parse(t, "/tmp/src/count.go", countGo)
	id, err := f.IdentAt(8, 9)
	if err != nil {
		t.Fatalf("IdentAt: %v", err)
	}
	root, err := f.Slice(id, Backward)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}

	if got := root.Text(); got != "return x" {
		t.Errorf("Text = %q", got)
	}
	if got := root.Element().String(); got != "return_statement (count.go:8)" {
		t.Errorf("Element = %q", got)
	}
	if got := root.Source().Owner(); got != "main#count" {
		t.Errorf("Owner = %q, want main#count", got)
	}
}

func TestSlice_JavaForward(t *testing.T) {
	f := parse(t, "Counter.java", counterJava)
	got := sliceLines(t, f, 3, 13, Forward)
	want := []int{3, 5, 7}
	if !equalInts(got, want) {
		t.Errorf("forward slice lines = %v, want %v", got, want)
	}
}

func TestSlice_JavaBackward(t *testing.T) {
	f := parse(t, "Counter.java", counterJava)
	id, err := f.IdentAt(5, 20)
	if err != nil {
		t.Fatalf("IdentAt: %v", err)
	}
	root, err := f.Slice(id, Backward)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	nodes, err := slice.Collect(root, slice.DefaultMaxDepth)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"expression_statement", "enhanced_for_statement", "method_declaration"}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		src := n.(*SliceNode).Source()
		if src.Kind != want[i] {
			t.Errorf("node %d kind = %q, want %q", i, src.Kind, want[i])
		}
		if src.Owner() != "Counter#total" {
			t.Errorf("node %d owner = %q", i, src.Owner())
		}
	}
}

func TestElementOwner(t *testing.T) {
	tests := []struct {
		elem Element
		want string
	}{
		{Element{Receiver: "Server", Function: "Start"}, "Server#Start"},
		{Element{Function: "main"}, "unknown#main"},
		{Element{Receiver: "Server"}, "Server#unknown"},
		{Element{}, "unknown#unknown"},
	}
	for _, tt := range tests {
		if got := tt.elem.Owner(); got != tt.want {
			t.Errorf("Owner() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"forward", Forward, false},
		{"BACKWARD", Backward, false},
		{"sideways", Forward, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() != strings.ToLower(tt.in) {
			t.Errorf("String() = %q", got.String())
		}
	}
}

func sliceKinds(t *testing.T, f *File, line, col int, dir Direction) []string {
	t.Helper()
	id, err := f.IdentAt(line, col)
	if err != nil {
		t.Fatalf("IdentAt(%d,%d): %v", line, col, err)
	}
	root, err := f.Slice(id, dir)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	nodes, err := slice.Collect(root, slice.DefaultMaxDepth)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var kinds []string
	for _, n := range nodes {
		kinds = append(kinds, n.(*SliceNode).Source().Kind)
	}
	return kinds
}

func TestSlice_JavaLoopUpdateWrites(t *testing.T) {
	src := `class Loop {
    int run(int n) {
        int s = 0;
        for (int i = 0; i < n; i++) {
            s = s + i;
        }
        return s;
    }
}
`
	f := parse(t, "Loop.java", src)
	got := strings.Join(sliceKinds(t, f, 5, 21, Backward), ",")
	want := "expression_statement,local_variable_declaration,update_expression"
	if got != want {
		t.Errorf("backward slice kinds = %q, want %q", got, want)
	}
}

func TestSlice_GoLoopUpdateWrites(t *testing.T) {
	f := parse(t, "count.go", countGo)
	got := strings.Join(sliceKinds(t, f, 5, 14, Backward), ",")
	want := "for_statement,short_var_declaration,inc_statement"
	if got != want {
		t.Errorf("backward slice kinds = %q, want %q", got, want)
	}
}

func TestSlice_LambdaOwnerIsEnclosingMethod(t *testing.T) {
	src := `class Box {
    void run(java.util.List<Integer> xs) {
        xs.forEach(v -> {
            int w = v + 1;
        });
    }
}
`
	f := parse(t, "Box.java", src)
	id, err := f.IdentAt(4, 17)
	if err != nil {
		t.Fatalf("IdentAt: %v", err)
	}
	root, err := f.Slice(id, Forward)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if got := root.Source().Owner(); got != "Box#run" {
		t.Errorf("Owner = %q, want Box#run", got)
	}
}
