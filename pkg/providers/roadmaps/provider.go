package roadmaps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/roadmap"
)

func init() {
	core.RegisterProviderPrototype("roadmaps", &Provider{})
}

type Config struct{}

func (c *Config) Validate() error { return nil }

// Provider serves curated learning paths. Every path is validated on
// construction; an invalid path is a build error, not a runtime skip.
type Provider struct {
	config       *Config
	instanceName string
	paths        []*roadmap.Path
}

func NewProvider(instanceName string, config interface{}) (core.Provider, error) {
	var cfg *Config
	if config == nil {
		cfg = &Config{}
	} else {
		var ok bool
		cfg, ok = config.(*Config)
		if !ok {
			return nil, fmt.Errorf("invalid config type for roadmaps provider")
		}
	}

	paths := defaultPaths()
	for _, p := range paths {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid roadmap: %w", err)
		}
	}

	return &Provider{
		config:       cfg,
		instanceName: instanceName,
		paths:        paths,
	}, nil
}

func (p *Provider) Type() string { return "roadmaps" }
func (p *Provider) Name() string { return p.instanceName }

func (p *Provider) ConfigType() interface{} { return &Config{} }

func (p *Provider) SetConfig(config interface{}) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for roadmaps provider")
	}
	p.config = cfg
	return nil
}

func (p *Provider) GetConfig() interface{} { return p.config }

// List returns every path in catalog order.
func (p *Provider) List() []*roadmap.Path {
	out := make([]*roadmap.Path, len(p.paths))
	copy(out, p.paths)
	return out
}

// Get returns the path with the given id, or nil.
func (p *Provider) Get(id string) *roadmap.Path {
	for _, path := range p.paths {
		if path.ID == id {
			return path
		}
	}
	return nil
}

func (p *Provider) Search(ctx context.Context, query string) ([]core.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	needle := strings.ToLower(query)
	var results []core.Result
	for _, path := range p.paths {
		if pathMatches(path, needle) {
			results = append(results, toResult(path))
		}
	}
	return results, nil
}

func pathMatches(path *roadmap.Path, needle string) bool {
	if strings.Contains(strings.ToLower(path.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(path.Description), needle) {
		return true
	}
	for _, tag := range path.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func toResult(path *roadmap.Path) core.Result {
	return core.NewResult(
		"roadmap-"+path.ID,
		path.Title,
		path.Description,
		"/roadmaps/"+path.ID,
		path.Tags,
		catalogDate,
		core.RoadmapMeta{
			Author:            "CourseHub",
			Nodes:             len(path.Nodes),
			EstimatedDuration: path.EstimatedDuration,
			Difficulty:        path.Difficulty,
			Rating:            path.Rating,
		},
	)
}

var catalogDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func (p *Provider) Close() error { return nil }

func (p *Provider) Factory(instanceName string, config interface{}) (core.Provider, error) {
	return NewProvider(instanceName, config)
}
