package filesearch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGitignoreRule(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"*.log", "test.log", false, true},
		{"*.log", "test.txt", false, false},
		{"*.log", "logs/test.log", false, true},

		{"node_modules/", "node_modules", true, true},
		{"node_modules/", "node_modules/package.json", false, true},
		{"node_modules/", "src/node_modules", true, true},

		{"build/*", "build/output.txt", false, true},
		{"build/*", "build", true, false},

		{"!important.log", "important.log", false, false},

		{"**/temp", "temp", false, true},
		{"**/temp", "src/lib/temp", false, true},

		{"/root.txt", "root.txt", false, true},
		{"/root.txt", "src/root.txt", false, false},

		{"Foo?.java", "Foo1.java", false, true},
		{"Foo[0-9].java", "Foo7.java", false, true},
	}

	for _, tt := range tests {
		r, ok := parseRule(tt.pattern)
		if !ok {
			t.Errorf("failed to parse pattern: %s", tt.pattern)
			continue
		}
		m := &GitignoreMatcher{rules: []ignoreRule{r}}
		if got := m.Matches(tt.path, tt.isDir); got != tt.want {
			t.Errorf("pattern %q, path %q (isDir=%v): got %v, want %v",
				tt.pattern, tt.path, tt.isDir, got, tt.want)
		}
	}
}

func TestGitignoreLastRuleWins(t *testing.T) {
	dir := t.TempDir()
	content := "# generated\n*.log\n!important.log\n\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	m := LoadGitignore(dir)

	tests := []struct {
		path string
		want bool
	}{
		{"test.log", true},
		{"important.log", false},
		{"other.txt", false},
	}
	for _, tt := range tests {
		if got := m.Matches(tt.path, false); got != tt.want {
			t.Errorf("path %q: got %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadGitignore_Missing(t *testing.T) {
	m := LoadGitignore(t.TempDir())
	if m.Matches("anything.go", false) {
		t.Error("empty matcher should not ignore anything")
	}
	var nilMatcher *GitignoreMatcher
	if nilMatcher.Matches("x", false) {
		t.Error("nil matcher should not ignore anything")
	}
}
