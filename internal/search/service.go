package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/reach/internal/config"
	"github.com/xonecas/reach/internal/store"
)

// Group is the hits of one contributor.
type Group struct {
	Name  string
	Items []Item
}

// Service runs searches across the configured contributors.
type Service struct {
	contributors []Contributor
	store        *store.Store
	maxResults   int
}

// NewService builds the contributors named in cfg for root. st may be nil,
// in which case queries are not recorded.
func NewService(root string, cfg config.SearchConfig, st *store.Store) (*Service, error) {
	var cs []Contributor
	for _, id := range cfg.Contributors {
		c, err := NewContributor(id, root)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return NewServiceWith(cs, cfg.MaxResults, st), nil
}

// NewServiceWith creates a service over explicit contributors.
// maxResults <= 0 means no limit.
func NewServiceWith(cs []Contributor, maxResults int, st *store.Store) *Service {
	sorted := append([]Contributor(nil), cs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortWeight() < sorted[j].SortWeight()
	})
	return &Service{contributors: sorted, store: st, maxResults: maxResults}
}

// Contributors returns the contributors in sort-weight order.
func (s *Service) Contributors() []Contributor {
	return s.contributors
}

// Search records pattern and runs it through every contributor.
func (s *Service) Search(ctx context.Context, pattern string) ([]Group, error) {
	return s.run(ctx, pattern, false)
}

// Find is Search restricted to contributors shown in find results.
func (s *Service) Find(ctx context.Context, pattern string) ([]Group, error) {
	return s.run(ctx, pattern, true)
}

func (s *Service) run(ctx context.Context, pattern string, findOnly bool) ([]Group, error) {
	s.store.Put(pattern)

	var groups []Group
	total := 0
	for _, c := range s.contributors {
		if findOnly && !c.ShowInFindResults() {
			continue
		}
		if s.maxResults > 0 && total >= s.maxResults {
			break
		}
		g := Group{Name: c.GroupName()}
		err := c.Fetch(ctx, pattern, func(it Item) bool {
			g.Items = append(g.Items, it)
			total++
			return s.maxResults <= 0 || total < s.maxResults
		})
		if err != nil {
			return groups, fmt.Errorf("%s: %w", c.ID(), err)
		}
		log.Debug().Str("contributor", c.ID()).Int("hits", len(g.Items)).Msg("search: contributor done")
		if len(g.Items) > 0 {
			groups = append(groups, g)
		}
	}
	return groups, nil
}
