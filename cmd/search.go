package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/Mayank-jangid007/CouseHub/pkg/config"
	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/search"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search learning resources across all providers",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Filter by result type (repo, video, article, note, roadmap)",
				Value: "all",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort mode (relevance, date, popularity)",
				Value: "relevance",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print raw JSON instead of formatted output",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return fmt.Errorf("missing query argument")
			}
			return runSearch(ctx, c.String("config"), query,
				c.String("type"), c.String("sort"), int(c.Int("limit")), c.Bool("json"))
		},
	}
}

func runSearch(ctx context.Context, configPath, query, typeFilter, sortMode string, limit int, asJSON bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry := core.GetGlobalRegistry()
	if err := createProvidersFromConfig(registry, cfg); err != nil {
		return fmt.Errorf("creating providers: %w", err)
	}
	defer func() { _ = registry.Close() }()

	rt := core.ResultType(typeFilter)
	if !rt.Valid() {
		return fmt.Errorf("unknown result type %q", typeFilter)
	}
	mode := search.SortMode(sortMode)
	if !mode.Valid() {
		return fmt.Errorf("unknown sort mode %q", sortMode)
	}

	svc := search.NewService(registry, cfg.RequestTimeout.Duration)
	resp, err := svc.Search(ctx, search.Params{Query: query, Type: rt, Sort: mode, Limit: limit})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(searchJSON(query, resp))
	}

	printSearchResults(query, resp)
	return nil
}

func printSearchResults(query string, resp *search.Response) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("🔎 %s", query)))

	if resp.SourcesFailed > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ %d of %d sources failed",
			resp.SourcesFailed, resp.SourcesTotal)))
	}

	if len(resp.Results) == 0 {
		fmt.Println(noDataStyle.Render("No results found"))
		return
	}

	fmt.Println(renderBadges(resp.Counts))
	for _, r := range resp.Results {
		body := r.PrettyText()
		body += "\n" + metaStyle.Render(formatWhen(r.CreatedAt()))
		fmt.Println(resultStyle.Render(body))
	}
	fmt.Printf("Total: %d results\n", len(resp.Results))
}

type resultJSON struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Type        core.ResultType `json:"type"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   string          `json:"created_at"`
	Score       int             `json:"score"`
}

type searchResultsJSON struct {
	Query         string                  `json:"query"`
	Results       []resultJSON            `json:"results"`
	Counts        map[core.ResultType]int `json:"counts"`
	SourcesTotal  int                     `json:"sources_total"`
	SourcesFailed int                     `json:"sources_failed"`
}

func searchJSON(query string, resp *search.Response) searchResultsJSON {
	out := searchResultsJSON{
		Query:         query,
		Results:       make([]resultJSON, 0, len(resp.Results)),
		Counts:        resp.Counts,
		SourcesTotal:  resp.SourcesTotal,
		SourcesFailed: resp.SourcesFailed,
	}
	for _, r := range resp.Results {
		out.Results = append(out.Results, resultJSON{
			ID:          r.ID(),
			Title:       r.Title(),
			Description: r.Description(),
			URL:         r.URL(),
			Type:        r.Type(),
			Tags:        r.Tags(),
			CreatedAt:   r.CreatedAt().Format("2006-01-02"),
			Score:       r.Score,
		})
	}
	return out
}

// renderBadges prints per-type counts in a stable type order.
func renderBadges(counts map[core.ResultType]int) string {
	types := make([]core.ResultType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	out := ""
	for _, t := range types {
		out += badgeStyle.Render(fmt.Sprintf("%s %s", t, formatCount(counts[t]))) + " "
	}
	return out
}
