// Package search fans a query out to a set of contributors, each of which
// searches the project in its own way, and records the query.
package search

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/xonecas/reach/internal/filesearch"
	"github.com/xonecas/reach/internal/treesitter"
)

// ErrUnknownContributor is returned for a contributor ID with no factory.
var ErrUnknownContributor = errors.New("search: unknown contributor")

// Item is one search hit.
type Item struct {
	Contributor string
	Path        string // relative to the project root
	Line        int    // 1-indexed
	Kind        string
	Text        string
}

func (it Item) String() string {
	if it.Kind != "" {
		return fmt.Sprintf("%s:%d: %s %s", it.Path, it.Line, it.Kind, it.Text)
	}
	return fmt.Sprintf("%s:%d: %s", it.Path, it.Line, it.Text)
}

// Contributor provides results for one group of a search.
type Contributor interface {
	ID() string
	GroupName() string
	// SortWeight orders groups; lower weights come first.
	SortWeight() int
	// ShowInFindResults reports whether the group is part of a find
	// (as opposed to a full search).
	ShowInFindResults() bool
	// Fetch calls consume for each hit until it returns false.
	Fetch(ctx context.Context, pattern string, consume func(Item) bool) error
}

// Factory builds a contributor rooted at a project directory.
type Factory func(root string) Contributor

var registry = map[string]Factory{
	"symbols": func(root string) Contributor { return NewSymbolContributor(root) },
	"text":    func(root string) Contributor { return NewTextContributor(root) },
}

// Registered returns the known contributor IDs, sorted.
func Registered() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewContributor builds the contributor registered under id.
func NewContributor(id, root string) (Contributor, error) {
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContributor, id)
	}
	return f(root), nil
}

// SymbolContributor matches declaration names from the project index.
type SymbolContributor struct {
	idx *treesitter.Index

	once     sync.Once
	buildErr error
}

// NewSymbolContributor creates a contributor over the symbols under root.
// The index is built on the first fetch.
func NewSymbolContributor(root string) *SymbolContributor {
	return &SymbolContributor{idx: treesitter.NewIndex(root)}
}

func (c *SymbolContributor) ID() string              { return "symbols" }
func (c *SymbolContributor) GroupName() string       { return "Symbols" }
func (c *SymbolContributor) SortWeight() int         { return 100 }
func (c *SymbolContributor) ShowInFindResults() bool { return false }

func (c *SymbolContributor) Fetch(ctx context.Context, pattern string, consume func(Item) bool) error {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	c.once.Do(func() { c.buildErr = c.idx.Build(ctx) })
	if c.buildErr != nil {
		return fmt.Errorf("build index: %w", c.buildErr)
	}

	for _, m := range c.idx.Find(re) {
		name := m.Symbol.Name
		if m.Symbol.Receiver != "" {
			name = m.Symbol.Receiver + "." + name
		}
		item := Item{
			Contributor: c.ID(),
			Path:        m.Path,
			Line:        m.Symbol.StartLine,
			Kind:        m.Symbol.Kind.String(),
			Text:        name,
		}
		if !consume(item) {
			return nil
		}
	}
	return nil
}

// TextContributor matches file contents line by line.
type TextContributor struct {
	searcher *filesearch.Searcher
}

// NewTextContributor creates a content search over root.
func NewTextContributor(root string) *TextContributor {
	return &TextContributor{searcher: filesearch.NewSearcher(root)}
}

func (c *TextContributor) ID() string              { return "text" }
func (c *TextContributor) GroupName() string       { return "Text" }
func (c *TextContributor) SortWeight() int         { return 200 }
func (c *TextContributor) ShowInFindResults() bool { return true }

func (c *TextContributor) Fetch(ctx context.Context, pattern string, consume func(Item) bool) error {
	return c.searcher.Search(ctx, pattern, false, func(r filesearch.Result) bool {
		return consume(Item{
			Contributor: c.ID(),
			Path:        r.Path,
			Line:        r.Line,
			Text:        r.Content,
		})
	})
}
