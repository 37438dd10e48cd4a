package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
)

func init() {
	core.RegisterProviderPrototype("github", &Provider{})
}

var logger = log.ForComponent("github")

const perPage = 20

type Config struct {
	// Token raises the search rate limit; anonymous access works too.
	Token string `toml:"token"`
	// Language restricts results to repositories in one language.
	Language string `toml:"language"`
}

func (c *Config) Validate() error {
	return nil
}

// Provider searches the code-hosting search API for repositories,
// ordered by stars descending, and normalizes them into results.
type Provider struct {
	config       *Config
	client       *github.Client
	instanceName string
}

func NewProvider(instanceName string, config interface{}) (core.Provider, error) {
	var cfg *Config
	if config == nil {
		cfg = &Config{}
	} else {
		var ok bool
		cfg, ok = config.(*Config)
		if !ok {
			return nil, fmt.Errorf("invalid config type for github provider")
		}
	}

	return &Provider{
		config:       cfg,
		client:       newClient(cfg.Token),
		instanceName: instanceName,
	}, nil
}

func newClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(context.Background(), ts))
}

func (p *Provider) Type() string { return "github" }
func (p *Provider) Name() string { return p.instanceName }

func (p *Provider) ConfigType() interface{} { return &Config{} }

func (p *Provider) SetConfig(config interface{}) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for github provider")
	}
	p.config = cfg
	p.client = newClient(cfg.Token)
	return cfg.Validate()
}

func (p *Provider) GetConfig() interface{} { return p.config }

func (p *Provider) Search(ctx context.Context, query string) ([]core.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	q := query
	if p.config.Language != "" {
		q = fmt.Sprintf("%s language:%s", query, p.config.Language)
	}

	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	res, _, err := p.client.Search.Repositories(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("searching repositories: %w", err)
	}

	results := make([]core.Result, 0, len(res.Repositories))
	for _, repo := range res.Repositories {
		r, err := p.convertRepo(repo)
		if err != nil {
			logger.Debugf("skipping repository: %v", err)
			continue
		}
		results = append(results, r)
	}

	logger.Debugf("query %q returned %d repositories", query, len(results))
	return results, nil
}

func (p *Provider) convertRepo(repo *github.Repository) (core.Result, error) {
	if repo.GetFullName() == "" {
		return nil, fmt.Errorf("repository missing full name")
	}
	if repo.CreatedAt == nil {
		return nil, fmt.Errorf("repository %s missing creation time", repo.GetFullName())
	}

	stars := repo.GetStargazersCount()
	description := repo.GetDescription()
	if description == "" {
		description = "No description available"
	}

	meta := core.RepoMeta{
		Stars:      stars,
		Forks:      repo.GetForksCount(),
		Language:   repo.GetLanguage(),
		Author:     repo.GetOwner().GetLogin(),
		Difficulty: difficultyForStars(stars),
		Rating:     ratingForStars(stars),
	}

	return core.NewResult(
		fmt.Sprintf("repo-%d", repo.GetID()),
		repo.GetFullName(),
		description,
		repo.GetHTMLURL(),
		repo.Topics,
		repo.CreatedAt.Time.UTC(),
		meta,
	), nil
}

// difficultyForStars buckets a repository by popularity: heavily
// starred projects tend to assume more context from the reader.
func difficultyForStars(stars int) core.Difficulty {
	switch {
	case stars > 10000:
		return core.Advanced
	case stars > 1000:
		return core.Intermediate
	default:
		return core.Beginner
	}
}

// ratingForStars derives a rating from stars, linear in stars/10000
// and clamped to [3, 5].
func ratingForStars(stars int) float64 {
	rating := float64(stars) / 10000
	if rating < 3 {
		return 3
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) Factory(instanceName string, config interface{}) (core.Provider, error) {
	return NewProvider(instanceName, config)
}
