package treesitter

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/reach/internal/filesearch"
)

// maxIndexFileSize skips generated or vendored blobs.
const maxIndexFileSize = 1 << 20

// Index holds the declarations of every supported file under a root.
type Index struct {
	mu    sync.RWMutex
	files map[string][]Symbol // relPath -> symbols
	root  string
}

// NewIndex creates an empty index rooted at dir.
func NewIndex(root string) *Index {
	return &Index{
		files: make(map[string][]Symbol),
		root:  root,
	}
}

// Build walks the project tree and parses every supported file, honouring
// the root .gitignore.
func (idx *Index) Build(ctx context.Context) error {
	matcher := filesearch.LoadGitignore(idx.root)

	files := make(map[string][]Symbol)
	err := filepath.WalkDir(idx.root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(idx.root, path)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || (rel != "." && matcher.Matches(rel, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Matches(rel, false) || !Supported(path) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxIndexFileSize {
			return nil
		}

		syms, err := ParseFile(path)
		if err != nil {
			log.Debug().Err(err).Str("path", rel).Msg("index: skipping unparsable file")
			return nil
		}
		if len(syms) > 0 {
			files[rel] = syms
		}
		return nil
	})
	if err != nil {
		return err
	}

	idx.mu.Lock()
	idx.files = files
	idx.mu.Unlock()
	return nil
}

// Files returns the indexed relative paths, sorted.
func (idx *Index) Files() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	paths := make([]string, 0, len(idx.files))
	for p := range idx.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Symbols returns symbols for a given relative path.
func (idx *Index) Symbols(relPath string) []Symbol {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.files[relPath]
}

// Match is a symbol found by Find.
type Match struct {
	Path   string
	Symbol Symbol
}

// Find returns every symbol whose name matches re, ordered by path and
// then by position.
func (idx *Index) Find(re *regexp.Regexp) []Match {
	var out []Match
	for _, path := range idx.Files() {
		Walk(idx.Symbols(path), func(s Symbol) {
			if s.Kind != KindPackage && re.MatchString(s.Name) {
				out = append(out, Match{Path: path, Symbol: s})
			}
		})
	}
	return out
}
