package roadmaps

import (
	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/roadmap"
)

// defaultPaths is the built-in catalog. Paths here must pass
// roadmap.Validate; NewProvider rejects the whole catalog otherwise.
func defaultPaths() []*roadmap.Path {
	return []*roadmap.Path{
		{
			ID:                "frontend-developer",
			Title:             "Frontend Developer",
			Description:       "From HTML and CSS fundamentals to building production React applications.",
			Category:          "web",
			Difficulty:        core.Beginner,
			EstimatedDuration: "6 months",
			Rating:            4.8,
			Tags:              []string{"html", "css", "javascript", "react", "frontend"},
			CompletedBy:       12400,
			Nodes: []roadmap.Node{
				{
					ID: "html-css", Title: "HTML & CSS", Type: roadmap.Milestone,
					Description:   "Semantic markup, flexbox, grid, and responsive layouts.",
					Position:      roadmap.Position{X: 0, Y: 0},
					Resources:     roadmap.ResourceCounts{Videos: 12, Articles: 8, Notes: 3},
					EstimatedTime: "4 weeks", Difficulty: core.Beginner,
				},
				{
					ID: "javascript", Title: "JavaScript", Type: roadmap.Topic,
					Description:   "The language of the browser, from variables to async/await.",
					Position:      roadmap.Position{X: 1, Y: 0},
					Prerequisites: []string{"html-css"},
					Resources:     roadmap.ResourceCounts{Repos: 4, Videos: 20, Articles: 15, Notes: 5},
					EstimatedTime: "8 weeks", Difficulty: core.Beginner,
				},
				{
					ID: "react", Title: "React", Type: roadmap.Topic,
					Description:   "Components, hooks, state management, and routing.",
					Position:      roadmap.Position{X: 2, Y: 0},
					Prerequisites: []string{"javascript"},
					Resources:     roadmap.ResourceCounts{Repos: 8, Videos: 18, Articles: 10},
					EstimatedTime: "8 weeks", Difficulty: core.Intermediate,
				},
				{
					ID: "portfolio", Title: "Portfolio Project", Type: roadmap.Project,
					Description:   "Build and deploy a full single-page application.",
					Position:      roadmap.Position{X: 3, Y: 0},
					Prerequisites: []string{"react"},
					Resources:     roadmap.ResourceCounts{Repos: 3, Articles: 2},
					EstimatedTime: "4 weeks", Difficulty: core.Intermediate,
				},
				{
					ID: "frontend-assessment", Title: "Skills Assessment", Type: roadmap.Assessment,
					Description:   "Verify your understanding across the whole track.",
					Position:      roadmap.Position{X: 4, Y: 0},
					Prerequisites: []string{"portfolio"},
					EstimatedTime: "1 week", Difficulty: core.Intermediate,
				},
			},
			Connections: []roadmap.Connection{
				{From: "html-css", To: "javascript"},
				{From: "javascript", To: "react"},
				{From: "react", To: "portfolio"},
				{From: "portfolio", To: "frontend-assessment"},
			},
		},
		{
			ID:                "backend-go",
			Title:             "Backend Developer with Go",
			Description:       "Server-side development with Go: HTTP services, databases, and deployment.",
			Category:          "backend",
			Difficulty:        core.Intermediate,
			EstimatedDuration: "5 months",
			Rating:            4.7,
			Tags:              []string{"go", "golang", "backend", "api", "databases"},
			CompletedBy:       7300,
			Nodes: []roadmap.Node{
				{
					ID: "go-basics", Title: "Go Fundamentals", Type: roadmap.Milestone,
					Description:   "Syntax, types, interfaces, and goroutines.",
					Position:      roadmap.Position{X: 0, Y: 0},
					Resources:     roadmap.ResourceCounts{Repos: 6, Videos: 10, Articles: 12, Notes: 4},
					EstimatedTime: "6 weeks", Difficulty: core.Beginner,
				},
				{
					ID: "http-services", Title: "HTTP Services", Type: roadmap.Topic,
					Description:   "Routing, middleware, JSON APIs, and graceful shutdown.",
					Position:      roadmap.Position{X: 1, Y: 0},
					Prerequisites: []string{"go-basics"},
					Resources:     roadmap.ResourceCounts{Repos: 5, Videos: 8, Articles: 9},
					EstimatedTime: "5 weeks", Difficulty: core.Intermediate,
				},
				{
					ID: "databases", Title: "Databases", Type: roadmap.Topic,
					Description:   "SQL, migrations, and connection management.",
					Position:      roadmap.Position{X: 1, Y: 1},
					Prerequisites: []string{"go-basics"},
					Resources:     roadmap.ResourceCounts{Repos: 3, Videos: 7, Articles: 11, Notes: 2},
					EstimatedTime: "5 weeks", Difficulty: core.Intermediate,
				},
				{
					ID: "api-project", Title: "API Capstone", Type: roadmap.Project,
					Description:   "Design and ship a documented REST API backed by a database.",
					Position:      roadmap.Position{X: 2, Y: 0},
					Prerequisites: []string{"http-services", "databases"},
					Resources:     roadmap.ResourceCounts{Repos: 4, Articles: 3},
					EstimatedTime: "4 weeks", Difficulty: core.Advanced,
				},
			},
			Connections: []roadmap.Connection{
				{From: "go-basics", To: "http-services"},
				{From: "go-basics", To: "databases"},
				{From: "http-services", To: "api-project"},
				{From: "databases", To: "api-project"},
			},
		},
		{
			ID:                "machine-learning",
			Title:             "Machine Learning Engineer",
			Description:       "Mathematics, classical ML, and deep learning with hands-on projects.",
			Category:          "data",
			Difficulty:        core.Advanced,
			EstimatedDuration: "9 months",
			Rating:            4.6,
			Tags:              []string{"machine learning", "python", "deep learning", "data science"},
			CompletedBy:       4100,
			Nodes: []roadmap.Node{
				{
					ID: "math-foundations", Title: "Math Foundations", Type: roadmap.Milestone,
					Description:   "Linear algebra, calculus, and probability for ML.",
					Position:      roadmap.Position{X: 0, Y: 0},
					Resources:     roadmap.ResourceCounts{Videos: 25, Articles: 10, Notes: 8},
					EstimatedTime: "10 weeks", Difficulty: core.Intermediate,
				},
				{
					ID: "classical-ml", Title: "Classical ML", Type: roadmap.Topic,
					Description:   "Regression, trees, ensembles, and model evaluation.",
					Position:      roadmap.Position{X: 1, Y: 0},
					Prerequisites: []string{"math-foundations"},
					Resources:     roadmap.ResourceCounts{Repos: 6, Videos: 15, Articles: 12},
					EstimatedTime: "8 weeks", Difficulty: core.Intermediate,
				},
				{
					ID: "deep-learning", Title: "Deep Learning", Type: roadmap.Topic,
					Description:   "Neural networks, CNNs, transformers, and training at scale.",
					Position:      roadmap.Position{X: 2, Y: 0},
					Prerequisites: []string{"classical-ml"},
					Resources:     roadmap.ResourceCounts{Repos: 10, Videos: 20, Articles: 14, Notes: 5},
					EstimatedTime: "12 weeks", Difficulty: core.Advanced,
				},
				{
					ID: "ml-capstone", Title: "ML Capstone", Type: roadmap.Project,
					Description:   "Train, evaluate, and deploy a model end to end.",
					Position:      roadmap.Position{X: 3, Y: 0},
					Prerequisites: []string{"deep-learning"},
					Resources:     roadmap.ResourceCounts{Repos: 5, Articles: 4},
					EstimatedTime: "6 weeks", Difficulty: core.Advanced,
				},
			},
			Connections: []roadmap.Connection{
				{From: "math-foundations", To: "classical-ml"},
				{From: "classical-ml", To: "deep-learning"},
				{From: "deep-learning", To: "ml-capstone"},
			},
		},
	}
}
