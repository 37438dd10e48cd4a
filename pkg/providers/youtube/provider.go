package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
)

func init() {
	core.RegisterProviderPrototype("youtube", &Provider{})
}

var logger = log.ForComponent("youtube")

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	maxResults     = 20
)

type Config struct {
	APIKey string `toml:"api_key"`
	// BaseURL overrides the API endpoint. Used in tests.
	BaseURL string `toml:"base_url"`
}

func (c *Config) Validate() error {
	return nil
}

// Provider searches the video-hosting API. The API requires a
// provisioned key; without one the provider degrades to an empty
// result set instead of failing the whole search.
type Provider struct {
	config       *Config
	client       *http.Client
	instanceName string
	keyWarning   sync.Once
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			ChannelTitle string    `json:"channelTitle"`
			PublishedAt  time.Time `json:"publishedAt"`
			Tags         []string  `json:"tags"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func NewProvider(instanceName string, config interface{}) (core.Provider, error) {
	var cfg *Config
	if config == nil {
		cfg = &Config{}
	} else {
		var ok bool
		cfg, ok = config.(*Config)
		if !ok {
			return nil, fmt.Errorf("invalid config type for youtube provider")
		}
	}

	return &Provider{
		config:       cfg,
		client:       &http.Client{Timeout: 10 * time.Second},
		instanceName: instanceName,
	}, nil
}

func (p *Provider) Type() string { return "youtube" }
func (p *Provider) Name() string { return p.instanceName }

func (p *Provider) ConfigType() interface{} { return &Config{} }

func (p *Provider) SetConfig(config interface{}) error {
	cfg, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for youtube provider")
	}
	p.config = cfg
	return cfg.Validate()
}

func (p *Provider) GetConfig() interface{} { return p.config }

func (p *Provider) Search(ctx context.Context, query string) ([]core.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if p.config.APIKey == "" {
		// Configuration gap, not an error: the tab just stays empty.
		p.keyWarning.Do(func() {
			logger.Warnf("no API key configured, video search disabled")
		})
		return nil, nil
	}

	base := p.config.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("key", p.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching videos: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warnf("closing response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]core.Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" || item.Snippet.PublishedAt.IsZero() {
			continue
		}
		meta := core.VideoMeta{
			Channel:    item.Snippet.ChannelTitle,
			Thumbnail:  item.Snippet.Thumbnails.Medium.URL,
			Difficulty: core.Intermediate,
			Rating:     4.0,
		}
		results = append(results, core.NewResult(
			"video-"+item.ID.VideoID,
			item.Snippet.Title,
			item.Snippet.Description,
			"https://www.youtube.com/watch?v="+item.ID.VideoID,
			item.Snippet.Tags,
			item.Snippet.PublishedAt.UTC(),
			meta,
		))
	}

	logger.Debugf("query %q returned %d videos", query, len(results))
	return results, nil
}

func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func (p *Provider) Factory(instanceName string, config interface{}) (core.Provider, error) {
	return NewProvider(instanceName, config)
}
