package notes

import (
	"context"
	"testing"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

func TestSearchMatching(t *testing.T) {
	p, err := NewProvider("notes_test", nil)
	if err != nil {
		t.Fatalf("creating provider: %v", err)
	}

	tests := []struct {
		query    string
		expected int
	}{
		{"javascript", 1},    // title match
		{"heaps", 1},         // description match
		{"devops", 1},        // tag match
		{"DOCKER", 1},        // case-insensitive
		{"nonexistent-x", 0}, // no match
		{"", 0},              // empty short-circuits
		{"  ", 0},
	}

	for _, tt := range tests {
		results, err := p.Search(context.Background(), tt.query)
		if err != nil {
			t.Errorf("Search(%q) error: %v", tt.query, err)
			continue
		}
		if len(results) != tt.expected {
			t.Errorf("Search(%q) = %d results, expected %d", tt.query, len(results), tt.expected)
		}
	}
}

func TestResultsAreNotes(t *testing.T) {
	p, err := NewProvider("notes_test", nil)
	if err != nil {
		t.Fatalf("creating provider: %v", err)
	}

	results, err := p.Search(context.Background(), "notes")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected catalog matches for broad query")
	}
	for _, r := range results {
		if r.Type() != core.TypeNote {
			t.Errorf("result %s has type %s, expected note", r.ID(), r.Type())
		}
		meta, ok := r.Meta().(core.NoteMeta)
		if !ok {
			t.Errorf("result %s metadata is %T, expected NoteMeta", r.ID(), r.Meta())
			continue
		}
		if meta.Downloads <= 0 {
			t.Errorf("result %s has no download count", r.ID())
		}
	}
}
