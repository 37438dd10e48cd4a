package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// BookmarkCommand creates the bookmark command and its subcommands
func BookmarkCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookmark",
		Usage: "Manage saved resources",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Save a resource by id",
				ArgsUsage: "<resource id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("missing resource id")
					}
					return runBookmarkAdd(ctx, c.String("config"), id)
				},
			},
			{
				Name:      "rm",
				Usage:     "Remove a saved resource",
				ArgsUsage: "<resource id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("missing resource id")
					}
					return runBookmarkRemove(ctx, c.String("config"), id)
				},
			},
			{
				Name:  "list",
				Usage: "List saved resources",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runBookmarkList(ctx, c.String("config"))
				},
			},
		},
	}
}

func runBookmarkAdd(ctx context.Context, configPath, resourceID string) error {
	svc, st, err := openAuth(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	u, err := currentUser(ctx, svc)
	if err != nil {
		return err
	}
	if err := st.AddBookmark(ctx, u.UID, resourceID); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", resourceID)
	return nil
}

func runBookmarkRemove(ctx context.Context, configPath, resourceID string) error {
	svc, st, err := openAuth(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	u, err := currentUser(ctx, svc)
	if err != nil {
		return err
	}
	if err := st.RemoveBookmark(ctx, u.UID, resourceID); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", resourceID)
	return nil
}

func runBookmarkList(ctx context.Context, configPath string) error {
	svc, st, err := openAuth(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	u, err := currentUser(ctx, svc)
	if err != nil {
		return err
	}
	marks, err := st.Bookmarks(ctx, u.UID)
	if err != nil {
		return err
	}

	if len(marks) == 0 {
		fmt.Println(noDataStyle.Render("No bookmarks yet"))
		return nil
	}
	fmt.Println(titleStyle.Render("🔖 Bookmarks"))
	for _, b := range marks {
		fmt.Printf("%s  %s\n", b.ResourceID, metaStyle.Render(formatWhen(b.AddedAt)))
	}
	return nil
}
