package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Mayank-jangid007/CouseHub/pkg/suggest"
)

// SuggestCommand creates the suggest command
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Show search suggestions for a partial query",
		ArgsUsage: "<input>",
		Action: func(ctx context.Context, c *cli.Command) error {
			input := c.Args().First()
			if input == "" {
				return fmt.Errorf("missing input argument")
			}

			matches := suggest.NewIndex().Matches(input)
			if len(matches) == 0 {
				fmt.Println(noDataStyle.Render("No suggestions"))
				return nil
			}
			for _, m := range matches {
				fmt.Println(m)
			}
			return nil
		},
	}
}
