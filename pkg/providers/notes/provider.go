package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

func init() {
	core.RegisterProviderPrototype("notes", &Provider{})
}

type Config struct{}

func (c *Config) Validate() error { return nil }

// Provider serves community-shared study notes from a static catalog,
// filtered by case-insensitive substring match. Placeholder for a
// notes backend that is not integrated yet.
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
		core.NewResult("note-1", "Data Structures Cheat Sheet",
			"Condensed notes on arrays, linked lists, trees, heaps, and hash tables.",
			"https://notes.example/data-structures",
			[]string{"data structures", "algorithms", "interview"},
			date(2024, 2, 10),
			core.NoteMeta{Downloads: 34000, Author: "campusnotes", Format: "pdf", Difficulty: core.Intermediate, Rating: 4.6}),
		core.NewResult("note-2", "JavaScript ES6+ Quick Reference",
			"Arrow functions, destructuring, promises, and async/await with examples.",
			"https://notes.example/es6-reference",
			[]string{"javascript", "es6", "frontend"},
			date(2024, 1, 22),
			core.NoteMeta{Downloads: 51000, Author: "webdevnotes", Format: "markdown", Difficulty: core.Beginner, Rating: 4.4}),
		core.NewResult("note-3", "Docker and Kubernetes Study Notes",
			"Container lifecycle, images, pods, services, and deployment strategies.",
			"https://notes.example/docker-k8s",
			[]string{"docker", "kubernetes", "devops"},
			date(2024, 3, 12),
			core.NoteMeta{Downloads: 12000, Author: "opsnotes", Format: "pdf", Difficulty: core.Advanced, Rating: 4.7}),
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
			return nil, fmt.Errorf("invalid config type for notes provider")
		}
	}

	return &Provider{
		config:       cfg,
		instanceName: instanceName,
		catalog:      defaultCatalog(),
	}, nil
}

func (p *Provider) Type() string { return "notes" }
func (p *Provider) Name() string { return p.instanceName }

func (p *Provider) ConfigType() interface{} { return &Config{} }

func (p *Provider) SetConfig(config interface{}) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for notes provider")
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
