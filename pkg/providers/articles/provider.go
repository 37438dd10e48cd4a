package articles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

func init() {
	core.RegisterProviderPrototype("articles", &Provider{})
}

type Config struct{}

func (c *Config) Validate() error { return nil }

// Provider serves a static article catalog, filtered by naive
// case-insensitive substring match. It stands in for a real
// Medium/Dev.to/Hashnode integration.
type Provider struct {
	config       *Config
	instanceName string
	catalog      []core.Result
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func defaultCatalog() []core.Result {
	return []core.Result{
		core.NewResult("article-1", "React Official Documentation",
			"The official React documentation with comprehensive guides and API reference.",
			"https://react.dev",
			[]string{"react", "documentation", "frontend"},
			date(2024, 1, 15),
			core.ArticleMeta{Views: 1250000, ReadTime: "45 min", Author: "React Team", Difficulty: core.Intermediate, Rating: 4.9}),
		core.NewResult("article-2", "Understanding Go Concurrency",
			"Goroutines, channels, and the patterns that tie them together.",
			"https://dev.example/go-concurrency",
			[]string{"go", "concurrency", "backend"},
			date(2024, 2, 20),
			core.ArticleMeta{Views: 84000, ReadTime: "18 min", Author: "Ana Torres", Difficulty: core.Advanced, Rating: 4.7}),
		core.NewResult("article-3", "A Gentle Introduction to Machine Learning",
			"Core concepts of supervised learning explained without heavy math.",
			"https://blog.example/ml-intro",
			[]string{"machine learning", "python", "beginner"},
			date(2024, 3, 5),
			core.ArticleMeta{Views: 210000, ReadTime: "25 min", Author: "Sam Okafor", Difficulty: core.Beginner, Rating: 4.5}),
		core.NewResult("article-4", "PostgreSQL Indexing Deep Dive",
			"How B-tree, GIN, and BRIN indexes work and when to reach for each.",
			"https://blog.example/pg-indexes",
			[]string{"postgresql", "database", "performance"},
			date(2024, 1, 28),
			core.ArticleMeta{Views: 56000, ReadTime: "30 min", Author: "Priya Nair", Difficulty: core.Advanced, Rating: 4.8}),
	}
}

func NewProvider(instanceName string, config interface{}) (core.Provider, error) {
	var cfg *Config
	if config == nil {
		cfg = &Config{}
	} else {
		var ok bool
		cfg, ok = config.(*Config)
		if !ok {
			return nil, fmt.Errorf("invalid config type for articles provider")
		}
	}

	return &Provider{
		config:       cfg,
		instanceName: instanceName,
		catalog:      defaultCatalog(),
	}, nil
}

func (p *Provider) Type() string { return "articles" }
func (p *Provider) Name() string { return p.instanceName }

func (p *Provider) ConfigType() interface{} { return &Config{} }

func (p *Provider) SetConfig(config interface{}) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for articles provider")
	}
	p.config = cfg
	return nil
}

func (p *Provider) GetConfig() interface{} { return p.config }

func (p *Provider) Search(ctx context.Context, query string) ([]core.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	needle := strings.ToLower(query)
	var results []core.Result
	for _, r := range p.catalog {
		if matches(r, needle) {
			results = append(results, r)
		}
	}
	return results, nil
}

func matches(r core.Result, needle string) bool {
	if strings.Contains(strings.ToLower(r.Title()), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description()), needle) {
		return true
	}
	for _, tag := range r.Tags() {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func (p *Provider) Close() error { return nil }

func (p *Provider) Factory(instanceName string, config interface{}) (core.Provider, error) {
	return NewProvider(instanceName, config)
}
