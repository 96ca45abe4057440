// Package filesearch walks a source tree for content matches, honouring
// .gitignore.
package filesearch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// maxSearchFileSize skips files too large to be source.
const maxSearchFileSize = 10 << 20

// Result is one matching line.
type Result struct {
	Path    string // relative to the search root
	Line    int    // 1-indexed
	Content string
}

// Searcher finds lines matching a pattern under a root directory.
type Searcher struct {
	root   string
	ignore *GitignoreMatcher
}

// NewSearcher creates a searcher for root.
func NewSearcher(root string) *Searcher {
	return &Searcher{root: root, ignore: LoadGitignore(root)}
}

// Search calls consume for every line matching pattern, in walk order,
// until consume returns false or the context is cancelled. The pattern is
// case-insensitive unless caseSensitive is set.
func (s *Searcher) Search(ctx context.Context, pattern string, caseSensitive bool, consume func(Result) bool) error {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	err = filepath.WalkDir(s.root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || (rel != "." && s.ignore.Matches(rel, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.ignore.Matches(rel, false) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxSearchFileSize {
			return nil
		}
		if !scanFile(path, rel, re, consume) {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return err
	}
	return nil
}

// scanFile reports false once consume asks to stop. Binary files are
// skipped.
func scanFile(path, rel string, re *regexp.Regexp, consume func(Result) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var hits []Result
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := sc.Bytes()
		if bytes.IndexByte(line, 0) >= 0 {
			return true
		}
		if re.Match(line) {
			hits = append(hits, Result{Path: rel, Line: n, Content: string(line)})
		}
	}
	for _, h := range hits {
		if !consume(h) {
			return false
		}
	}
	return true
}
