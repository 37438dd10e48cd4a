package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/trending"
)

// ExploreCommand creates the explore command
func ExploreCommand() *cli.Command {
	return &cli.Command{
		Name:  "explore",
		Usage: "Browse resource categories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "filter",
				Usage: "Filter categories by name",
			},
			&cli.StringFlag{
				Name:  "difficulty",
				Usage: "Filter by difficulty (beginner, intermediate, advanced)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runExplore(c.String("filter"), c.String("difficulty"))
		},
	}
}

func runExplore(filter, difficulty string) error {
	// Categories are static; no providers needed.
	svc := trending.NewService(core.NewRegistry())
	categories := svc.FilterCategories(filter, core.Difficulty(difficulty))

	if len(categories) == 0 {
		fmt.Println(noDataStyle.Render("No matching categories"))
		return nil
	}

	titleCaser := cases.Title(language.English)
	fmt.Println(titleStyle.Render("🧭 Explore"))
	for _, cat := range categories {
		fmt.Println(headerStyle.Render(fmt.Sprintf("%s %s", cat.Icon, cat.Title)))
		fmt.Printf("  %s resources, %s level\n",
			formatCount(cat.Resources), titleCaser.String(string(cat.Difficulty)))
		fmt.Println(metaStyle.Render(fmt.Sprintf("  search: %s", cat.Query)))
	}
	return nil
}
