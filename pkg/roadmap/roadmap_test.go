package roadmap

import (
	"strings"
	"testing"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

func samplePath() *Path {
	return &Path{
		ID:         "go-backend",
		Title:      "Go Backend Developer",
		Difficulty: core.Intermediate,
		Nodes: []Node{
			{ID: "basics", Title: "Language Basics", Type: Milestone},
			{ID: "http", Title: "HTTP Servers", Type: Topic, Prerequisites: []string{"basics"}},
			{ID: "db", Title: "Databases", Type: Topic, Prerequisites: []string{"basics"}},
			{ID: "capstone", Title: "Capstone Project", Type: Project, Prerequisites: []string{"http", "db"}},
		},
		Connections: []Connection{
			{From: "basics", To: "http"},
			{From: "basics", To: "db"},
			{From: "http", To: "capstone"},
			{From: "db", To: "capstone"},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if err := samplePath().Validate(); err != nil {
		t.Fatalf("valid path rejected: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Path)
		want   string
	}{
		{
			name:   "empty id",
			mutate: func(p *Path) { p.ID = "" },
			want:   "missing id",
		},
		{
			name:   "no nodes",
			mutate: func(p *Path) { p.Nodes = nil },
			want:   "no nodes",
		},
		{
			name: "duplicate node id",
			mutate: func(p *Path) {
				p.Nodes = append(p.Nodes, Node{ID: "basics", Title: "dup"})
			},
			want: "duplicate node id",
		},
		{
			name: "unknown prerequisite",
			mutate: func(p *Path) {
				p.Nodes[1].Prerequisites = []string{"missing"}
			},
			want: "unknown node missing",
		},
		{
			name: "connection to unknown node",
			mutate: func(p *Path) {
				p.Connections = append(p.Connections, Connection{From: "basics", To: "ghost"})
			},
			want: "unknown node ghost",
		},
		{
			name: "cycle",
			mutate: func(p *Path) {
				p.Connections = append(p.Connections, Connection{From: "capstone", To: "basics"})
			},
			want: "cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePath()
			tt.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestSelfPrerequisiteIsCycle(t *testing.T) {
	p := samplePath()
	p.Nodes[0].Prerequisites = []string{"basics"}
	if err := p.Validate(); err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("self-referencing prerequisite not rejected: %v", err)
	}
}

func TestProgressToggle(t *testing.T) {
	pr := NewProgress(samplePath())

	if pr.Completed("basics") {
		t.Error("fresh tracker should have nothing complete")
	}
	if !pr.Toggle("basics") {
		t.Error("first toggle should mark complete")
	}
	if !pr.Completed("basics") {
		t.Error("toggle did not persist")
	}
	if pr.Toggle("basics") {
		t.Error("second toggle should mark incomplete")
	}
	if pr.Toggle("nonexistent") {
		t.Error("toggling unknown node should report false")
	}
}

func TestProgressPercent(t *testing.T) {
	pr := NewProgress(samplePath())
	if got := pr.Percent(); got != 0 {
		t.Errorf("empty progress = %d%%, want 0", got)
	}
	pr.Toggle("basics")
	pr.Toggle("http")
	if got := pr.Percent(); got != 50 {
		t.Errorf("2 of 4 nodes = %d%%, want 50", got)
	}
}

func TestUnlocked(t *testing.T) {
	pr := NewProgress(samplePath())

	if !pr.Unlocked("basics") {
		t.Error("node with no prerequisites should be unlocked")
	}
	if pr.Unlocked("capstone") {
		t.Error("capstone should be locked initially")
	}
	pr.Toggle("basics")
	pr.Toggle("http")
	if pr.Unlocked("capstone") {
		t.Error("capstone needs both http and db")
	}
	pr.Toggle("db")
	if !pr.Unlocked("capstone") {
		t.Error("capstone should unlock once all prerequisites complete")
	}
}
