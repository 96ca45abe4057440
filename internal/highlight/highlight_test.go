package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHighlight_AddsColourKeepsText(t *testing.T) {
	src := "return x + 1;"
	got := Highlight(src, "java", "github-dark")
	if got == src {
		t.Fatal("expected ANSI sequences in output")
	}
	if stripped := ansi.Strip(got); stripped != src {
		t.Errorf("stripped output = %q, want %q", stripped, src)
	}
}

func TestHighlight_UnknownLanguage(t *testing.T) {
	if got := Highlight("x := 1", "no-such-language", "github-dark"); got != "x := 1" {
		t.Errorf("got %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := map[string]string{
		"main.go":            "go",
		"src/Foo.JAVA":       "java",
		"build.gradle.kts":   "kotlin",
		"README":             "",
		"notes.unknownthing": "",
	}
	for path, want := range tests {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", path, got, want)
		}
	}
	if !strings.EqualFold(DetectLanguage("x.Go"), "go") {
		t.Error("extension matching should be case-insensitive")
	}
}

func TestHighlight_DefaultTheme(t *testing.T) {
	src := "x := 1"
	if got, want := Highlight(src, "go", ""), Highlight(src, "go", "github-dark"); got != want {
		t.Errorf("empty theme = %q, want default theme output %q", got, want)
	}
}
