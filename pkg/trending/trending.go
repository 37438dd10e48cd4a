// Package trending serves the landing-page content: trending
// resources and the explore category grid.
package trending

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
)

var logger = log.ForComponent("trending")

// Category is one tile of the explore grid.
type Category struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Query      string          `json:"query"`
	Icon       string          `json:"icon"`
	Difficulty core.Difficulty `json:"difficulty"`
	Resources  int             `json:"resources"`
}

// Service computes trending resources by polling a small set of seed
// queries across the providers and ranking by popularity.
type Service struct {
	registry *core.Registry
	seeds    []string

	mu        sync.RWMutex
	items     []core.Result
	refreshed time.Time
}

// defaultSeeds are broad queries whose merged results approximate
// "what is popular right now".
var defaultSeeds = []string{"javascript", "python", "go", "react", "machine learning"}

func NewService(registry *core.Registry) *Service {
	return &Service{registry: registry, seeds: defaultSeeds}
}

// Refresh polls the seed queries and rebuilds the trending cache.
// Provider failures are logged and skipped.
func (s *Service) Refresh(ctx context.Context) {
	seen := make(map[string]bool)
	var merged []core.Result

	for _, seed := range s.seeds {
		for _, p := range s.registry.All() {
			results, err := p.Search(ctx, seed)
			if err != nil {
				logger.Debugf("seed %q on %s: %v", seed, p.Name(), err)
				continue
			}
			for _, r := range results {
				if seen[r.ID()] {
					continue
				}
				seen[r.ID()] = true
				merged = append(merged, r)
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return core.Popularity(merged[i].Meta()) > core.Popularity(merged[j].Meta())
	})

	s.mu.Lock()
	s.items = merged
	s.refreshed = time.Now()
	s.mu.Unlock()
	logger.Debugf("refreshed trending: %d items", len(merged))
}

// Trending returns up to limit cached items, most popular first.
func (s *Service) Trending(limit int) []core.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.items) {
		limit = len(s.items)
	}
	out := make([]core.Result, limit)
	copy(out, s.items[:limit])
	return out
}

// RefreshedAt reports when the cache was last rebuilt.
func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}

// Categories returns the full explore grid.
func (s *Service) Categories() []Category {
	out := make([]Category, len(exploreCategories))
	copy(out, exploreCategories)
	return out
}

// FilterCategories narrows the grid by a title/query substring and an
// optional difficulty.
func (s *Service) FilterCategories(query string, difficulty core.Difficulty) []Category {
	needle := strings.ToLower(strings.TrimSpace(query))
	var out []Category
	for _, c := range exploreCategories {
		if difficulty != "" && c.Difficulty != difficulty {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Query), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

var exploreCategories = []Category{
	{ID: "web-dev", Title: "Web Development", Query: "web development", Icon: "🌐", Difficulty: core.Beginner, Resources: 2400},
	{ID: "mobile", Title: "Mobile Development", Query: "mobile development", Icon: "📱", Difficulty: core.Intermediate, Resources: 1200},
	{ID: "data-science", Title: "Data Science", Query: "data science", Icon: "📊", Difficulty: core.Intermediate, Resources: 1800},
	{ID: "machine-learning", Title: "Machine Learning", Query: "machine learning", Icon: "🤖", Difficulty: core.Advanced, Resources: 1500},
	{ID: "devops", Title: "DevOps & Cloud", Query: "devops", Icon: "☁️", Difficulty: core.Advanced, Resources: 900},
	{ID: "databases", Title: "Databases", Query: "databases", Icon: "🗄️", Difficulty: core.Intermediate, Resources: 760},
	{ID: "security", Title: "Security", Query: "security", Icon: "🔒", Difficulty: core.Advanced, Resources: 640},
	{ID: "programming-basics", Title: "Programming Basics", Query: "programming fundamentals", Icon: "💡", Difficulty: core.Beginner, Resources: 3100},
}
