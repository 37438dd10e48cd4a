package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Mayank-jangid007/CouseHub/pkg/config"
	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/trending"
)

// TrendingCommand creates the trending command
func TrendingCommand() *cli.Command {
	return &cli.Command{
		Name:  "trending",
		Usage: "Show trending learning resources",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of resources",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runTrending(ctx, c.String("config"), int(c.Int("limit")))
		},
	}
}

func runTrending(ctx context.Context, configPath string, limit int) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry := core.GetGlobalRegistry()
	if err := createProvidersFromConfig(registry, cfg); err != nil {
		return fmt.Errorf("creating providers: %w", err)
	}
	defer func() { _ = registry.Close() }()

	svc := trending.NewService(registry)
	svc.Refresh(ctx)

	items := svc.Trending(limit)
	if len(items) == 0 {
		fmt.Println(noDataStyle.Render("Nothing trending right now"))
		return nil
	}

	fmt.Println(titleStyle.Render("🔥 Trending"))
	for i, r := range items {
		body := fmt.Sprintf("%d. %s", i+1, r.PrettyText())
		fmt.Println(resultStyle.Render(body))
	}
	return nil
}
