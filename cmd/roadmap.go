package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
	"github.com/Mayank-jangid007/CouseHub/pkg/config"
	"github.com/Mayank-jangid007/CouseHub/pkg/providers/roadmaps"
	"github.com/Mayank-jangid007/CouseHub/pkg/store"
)

// RoadmapCommand creates the roadmap command and its subcommands
func RoadmapCommand() *cli.Command {
	return &cli.Command{
		Name:  "roadmap",
		Usage: "Browse structured learning paths",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List available learning paths",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runRoadmapList()
				},
			},
			{
				Name:      "show",
				Usage:     "Show a learning path's node graph with your progress",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("missing roadmap id")
					}
					return runRoadmapShow(ctx, c.String("config"), id)
				},
			},
			{
				Name:      "toggle",
				Usage:     "Mark a node done, or not done if it already is",
				ArgsUsage: "<id> <node>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() < 2 {
						return fmt.Errorf("usage: roadmap toggle <id> <node>")
					}
					return runRoadmapToggle(ctx, c.String("config"), c.Args().Get(0), c.Args().Get(1))
				},
			},
		},
	}
}

func roadmapProvider() (*roadmaps.Provider, error) {
	p, err := roadmaps.NewProvider("roadmaps", nil)
	if err != nil {
		return nil, fmt.Errorf("loading roadmaps: %w", err)
	}
	return p.(*roadmaps.Provider), nil
}

// openProgress opens the local store and resolves the progress owner:
// the signed-in user's uid, or "" for the anonymous local user.
func openProgress(ctx context.Context, configPath string) (*store.Store, string, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	db, err := store.Open(filepath.Join(cfg.StorageDir, "coursehub.db"))
	if err != nil {
		return nil, "", fmt.Errorf("opening store: %w", err)
	}

	uid := ""
	if cfg.JWTSecret != "" {
		svc := auth.NewService(db, auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL.Duration))
		if u, err := currentUser(ctx, svc); err == nil {
			uid = u.UID
		}
	}
	return db, uid, nil
}

func runRoadmapList() error {
	p, err := roadmapProvider()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("🗺  Learning Paths"))
	for _, path := range p.List() {
		fmt.Println(headerStyle.Render(fmt.Sprintf("%s (%s)", path.Title, path.ID)))
		fmt.Printf("  %s · %d nodes · %s\n", path.Difficulty, len(path.Nodes), path.EstimatedDuration)
		fmt.Println(metaStyle.Render("  " + path.Description))
	}
	return nil
}

func runRoadmapShow(ctx context.Context, configPath, id string) error {
	p, err := roadmapProvider()
	if err != nil {
		return err
	}

	path := p.Get(id)
	if path == nil {
		return fmt.Errorf("no roadmap with id %q", id)
	}

	db, uid, err := openProgress(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	done, err := db.CompletedNodes(ctx, uid, path.ID)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(path.Title))
	fmt.Println(path.Description)
	fmt.Println(metaStyle.Render(fmt.Sprintf("%d of %d nodes done", len(done), len(path.Nodes))))
	for _, n := range path.Nodes {
		marker := "[ ]"
		switch {
		case done[n.ID]:
			marker = "[x]"
		case !path.Unlocked(n.ID, done):
			marker = "[🔒]"
		}
		header := fmt.Sprintf("%s [%s] %s (%s)", marker, n.Type, n.Title, n.ID)
		fmt.Println(headerStyle.Render(header))
		if n.Description != "" {
			fmt.Printf("  %s\n", n.Description)
		}
		if len(n.Prerequisites) > 0 {
			fmt.Println(metaStyle.Render(fmt.Sprintf("  requires: %v", n.Prerequisites)))
		}
		if n.EstimatedTime != "" {
			fmt.Println(metaStyle.Render("  time: " + n.EstimatedTime))
		}
	}
	return nil
}

func runRoadmapToggle(ctx context.Context, configPath, id, nodeID string) error {
	p, err := roadmapProvider()
	if err != nil {
		return err
	}

	path := p.Get(id)
	if path == nil {
		return fmt.Errorf("no roadmap with id %q", id)
	}
	node := path.Node(nodeID)
	if node == nil {
		return fmt.Errorf("no node %q in roadmap %q", nodeID, id)
	}

	db, uid, err := openProgress(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	completed, err := db.ToggleRoadmapNode(ctx, uid, path.ID, node.ID)
	if err != nil {
		return err
	}
	if completed {
		fmt.Printf("Completed %s\n", node.Title)
	} else {
		fmt.Printf("Reopened %s\n", node.Title)
	}

	done, err := db.CompletedNodes(ctx, uid, path.ID)
	if err != nil {
		return err
	}
	fmt.Println(metaStyle.Render(fmt.Sprintf("%d of %d nodes done", len(done), len(path.Nodes))))
	return nil
}
