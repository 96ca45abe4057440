package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xonecas/reach/internal/config"
	"github.com/xonecas/reach/internal/store"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"server.go":    "package app\n\ntype Server struct{}\n\nfunc (s *Server) Serve() {}\n",
		"notes.txt":    "serve the files\nnothing here\n",
		"build/out.go": "package build\n\nfunc Serve() {}\n",
		".gitignore":   "build/\n",
	}
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

type fakeContributor struct {
	id     string
	weight int
	find   bool
	items  []Item
	err    error
	calls  int
}

func (f *fakeContributor) ID() string              { return f.id }
func (f *fakeContributor) GroupName() string       { return f.id }
func (f *fakeContributor) SortWeight() int         { return f.weight }
func (f *fakeContributor) ShowInFindResults() bool { return f.find }

func (f *fakeContributor) Fetch(_ context.Context, _ string, consume func(Item) bool) error {
	f.calls++
	for _, it := range f.items {
		if !consume(it) {
			break
		}
	}
	return f.err
}

func TestNewContributor(t *testing.T) {
	for _, id := range Registered() {
		c, err := NewContributor(id, t.TempDir())
		require.NoError(t, err)
		require.Equal(t, id, c.ID())
	}

	_, err := NewContributor("stackoverflow", t.TempDir())
	require.ErrorIs(t, err, ErrUnknownContributor)
}

func TestSymbolContributor(t *testing.T) {
	c := NewSymbolContributor(writeProject(t))

	var got []Item
	err := c.Fetch(context.Background(), "serve", func(it Item) bool {
		got = append(got, it)
		return true
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "struct", got[0].Kind)
	require.Equal(t, "Server", got[0].Text)
	require.Equal(t, "server.go", got[1].Path)
	require.Equal(t, 5, got[1].Line)
	require.Equal(t, "method", got[1].Kind)
	require.Equal(t, "Server.Serve", got[1].Text)

	err = c.Fetch(context.Background(), "(", func(Item) bool { return true })
	require.Error(t, err)
}

func TestTextContributor(t *testing.T) {
	c := NewTextContributor(writeProject(t))

	var got []Item
	err := c.Fetch(context.Background(), "serve", func(it Item) bool {
		got = append(got, it)
		return true
	})
	require.NoError(t, err)

	paths := make(map[string]bool)
	for _, it := range got {
		require.Equal(t, "text", it.Contributor)
		paths[it.Path] = true
	}
	require.True(t, paths["server.go"])
	require.True(t, paths["notes.txt"])
	require.False(t, paths[filepath.Join("build", "out.go")], "gitignored file searched")
}

func TestServiceSearch_OrderAndLimit(t *testing.T) {
	late := &fakeContributor{id: "late", weight: 20, items: []Item{{Text: "c"}, {Text: "d"}}}
	early := &fakeContributor{id: "early", weight: 10, items: []Item{{Text: "a"}, {Text: "b"}}}
	never := &fakeContributor{id: "never", weight: 30, items: []Item{{Text: "e"}}}

	s := NewServiceWith([]Contributor{late, early, never}, 3, nil)
	require.Equal(t, "early", s.Contributors()[0].ID())

	groups, err := s.Search(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "early", groups[0].Name)
	require.Len(t, groups[0].Items, 2)
	require.Equal(t, "late", groups[1].Name)
	require.Len(t, groups[1].Items, 1)
	require.Zero(t, never.calls)
}

func TestServiceFind(t *testing.T) {
	hidden := &fakeContributor{id: "hidden", items: []Item{{Text: "a"}}}
	shown := &fakeContributor{id: "shown", find: true, items: []Item{{Text: "b"}}}

	s := NewServiceWith([]Contributor{hidden, shown}, 0, nil)
	groups, err := s.Find(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "shown", groups[0].Name)
	require.Zero(t, hidden.calls)
}

func TestServiceSearch_Error(t *testing.T) {
	boom := errors.New("boom")
	s := NewServiceWith([]Contributor{&fakeContributor{id: "bad", err: boom}}, 0, nil)
	_, err := s.Search(context.Background(), "x")
	require.ErrorIs(t, err, boom)
}

func TestServiceSearch_RecordsQuery(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "q.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.SearchConfig{Contributors: []string{"text", "symbols"}, MaxResults: 10}
	s, err := NewService(writeProject(t), cfg, st)
	require.NoError(t, err)
	require.Equal(t, "symbols", s.Contributors()[0].ID())

	groups, err := s.Search(context.Background(), "Server")
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	queries, err := st.Queries()
	require.NoError(t, err)
	require.Len(t, queries, 1)
	require.Equal(t, "Server", queries[0].Text)
}

func TestNewService_UnknownContributor(t *testing.T) {
	_, err := NewService(t.TempDir(), config.SearchConfig{Contributors: []string{"nope"}}, nil)
	require.ErrorIs(t, err, ErrUnknownContributor)
}
