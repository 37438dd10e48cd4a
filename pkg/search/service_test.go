package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

// stubProvider returns a fixed result set, or an error, for any
// non-empty query.
type stubProvider struct {
	name    string
	results []core.Result
	err     error
}

func (s *stubProvider) Type() string { return "stub" }
func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Search(ctx context.Context, query string) ([]core.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	return s.results, s.err
}
func (s *stubProvider) ConfigType() interface{}            { return nil }
func (s *stubProvider) SetConfig(config interface{}) error { return nil }
func (s *stubProvider) GetConfig() interface{}             { return nil }
func (s *stubProvider) Close() error                       { return nil }
func (s *stubProvider) Factory(instanceName string, config interface{}) (core.Provider, error) {
	return &stubProvider{name: instanceName, results: s.results, err: s.err}, nil
}

func registryWith(t *testing.T, providers ...*stubProvider) *core.Registry {
	t.Helper()
	reg := core.NewRegistry()
	for i, p := range providers {
		proto := p
		typeName := fmt.Sprintf("stub%d", i)
		if err := reg.RegisterPrototype(typeName, proto); err != nil {
			t.Fatalf("registering prototype: %v", err)
		}
		if err := reg.CreateProvider(p.name, typeName, nil); err != nil {
			t.Fatalf("creating provider: %v", err)
		}
	}
	return reg
}

func result(id, title, desc string, createdAt time.Time, meta core.Metadata) core.Result {
	return core.NewResult(id, title, desc, "https://example.com/"+id, nil, createdAt, meta)
}

func TestRelevanceScoring(t *testing.T) {
	now := time.Now()
	reg := registryWith(t, &stubProvider{name: "one", results: []core.Result{
		result("a", "React Hooks Guide", "frontend patterns", now, core.ArticleMeta{Views: 10}),
		result("b", "Frontend Patterns", "covers react and more", now, core.ArticleMeta{Views: 20}),
	}})

	agg, err := NewAggregator(reg, 0).Search(context.Background(), "react")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(agg.Results) != 2 {
		t.Fatalf("got %d results, expected 2", len(agg.Results))
	}
	if agg.Results[0].ID() != "a" || agg.Results[0].Score != 2 {
		t.Errorf("title match should rank first with score 2, got %s score %d",
			agg.Results[0].ID(), agg.Results[0].Score)
	}
	if agg.Results[1].Score != 1 {
		t.Errorf("non-title match should score 1, got %d", agg.Results[1].Score)
	}
}

func TestUnrelatedResultsAreDropped(t *testing.T) {
	now := time.Now()
	reg := registryWith(t, &stubProvider{name: "remote", results: []core.Result{
		core.NewResult("tut", "React Tutorial", "component basics", "https://example.com/tut",
			[]string{"react", "frontend"}, now, core.VideoMeta{Views: 100}),
		core.NewResult("tagged", "Frontend Course", "modern UI work",
			"https://example.com/tagged", []string{"React"}, now, core.ArticleMeta{Views: 5}),
		// Matched remotely (say, in a README) but the query appears
		// nowhere the user can see it.
		core.NewResult("stray", "Node.js Guide", "server-side basics",
			"https://example.com/stray", []string{"node"}, now, core.RepoMeta{Stars: 900}),
	}})

	agg, err := NewAggregator(reg, 0).Search(context.Background(), "react")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(agg.Results) != 2 {
		t.Fatalf("got %d results, expected 2 containing the query", len(agg.Results))
	}
	for _, r := range agg.Results {
		if r.ID() == "stray" {
			t.Errorf("result %q should have been dropped: query absent from title, description, and tags", r.ID())
		}
	}
}

func TestEqualScoresKeepProviderOrder(t *testing.T) {
	now := time.Now()
	reg := registryWith(t,
		&stubProvider{name: "first", results: []core.Result{
			result("p1-a", "Go Basics", "", now, core.ArticleMeta{}),
		}},
		&stubProvider{name: "second", results: []core.Result{
			result("p2-a", "Go Routines", "", now, core.ArticleMeta{}),
		}},
	)

	agg, err := NewAggregator(reg, 0).Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if agg.Results[0].ID() != "p1-a" || agg.Results[1].ID() != "p2-a" {
		t.Errorf("ties should keep registration order, got %s then %s",
			agg.Results[0].ID(), agg.Results[1].ID())
	}
}

func TestPartialFailureIsSurvivable(t *testing.T) {
	now := time.Now()
	reg := registryWith(t,
		&stubProvider{name: "healthy", results: []core.Result{
			result("ok", "Go Result", "", now, core.ArticleMeta{}),
		}},
		&stubProvider{name: "broken", err: errors.New("upstream down")},
	)

	agg, err := NewAggregator(reg, 0).Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("partial failure should not fail the search: %v", err)
	}
	if agg.SourcesTotal != 2 || agg.SourcesFailed != 1 {
		t.Errorf("sources = %d/%d failed, expected 1/2 failed", agg.SourcesFailed, agg.SourcesTotal)
	}
	if len(agg.Results) != 1 {
		t.Errorf("got %d results, expected 1 from healthy provider", len(agg.Results))
	}
}

func TestAllSourcesFailed(t *testing.T) {
	reg := registryWith(t,
		&stubProvider{name: "a", err: errors.New("down")},
		&stubProvider{name: "b", err: errors.New("down")},
	)

	if _, err := NewAggregator(reg, 0).Search(context.Background(), "go"); err == nil {
		t.Fatal("expected error when every source fails")
	}
}

func TestEmptyQueryShortCircuits(t *testing.T) {
	reg := registryWith(t, &stubProvider{name: "a", err: errors.New("must not be called")})
	agg, err := NewAggregator(reg, 0).Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("empty query should be a no-op: %v", err)
	}
	if len(agg.Results) != 0 || agg.SourcesTotal != 0 {
		t.Errorf("empty query returned %d results from %d sources", len(agg.Results), agg.SourcesTotal)
	}
}

func TestSortByPopularityMixesCounters(t *testing.T) {
	now := time.Now()
	results := []Scored{
		{Result: result("repo", "Repo", "", now, core.RepoMeta{Stars: 100}), Score: 1},
		{Result: result("video", "Video", "", now, core.VideoMeta{Views: 500}), Score: 1},
		{Result: result("roadmap", "Roadmap", "", now, core.RoadmapMeta{}), Score: 1},
	}

	sorted := Sort(results, SortPopularity)

	want := []string{"video", "repo", "roadmap"}
	for i, id := range want {
		if sorted[i].ID() != id {
			t.Errorf("position %d = %s, expected %s", i, sorted[i].ID(), id)
		}
	}
}

func TestSortLeavesInputUntouched(t *testing.T) {
	now := time.Now()
	results := []Scored{
		{Result: result("low", "Low", "", now, core.RepoMeta{Stars: 1}), Score: 1},
		{Result: result("high", "High", "", now, core.RepoMeta{Stars: 99}), Score: 1},
	}

	sorted := Sort(results, SortPopularity)

	if sorted[0].ID() != "high" {
		t.Errorf("sorted order wrong, got %s first", sorted[0].ID())
	}
	if results[0].ID() != "low" || results[1].ID() != "high" {
		t.Errorf("input reordered: %s, %s", results[0].ID(), results[1].ID())
	}
}

func TestSortByDate(t *testing.T) {
	old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	results := []Scored{
		{Result: result("old", "Old", "", old, core.ArticleMeta{}), Score: 1},
		{Result: result("new", "New", "", recent, core.ArticleMeta{}), Score: 1},
	}

	sorted := Sort(results, SortDate)

	if sorted[0].ID() != "new" {
		t.Errorf("newest first, got %s", sorted[0].ID())
	}
}

func TestFilterBeforeSortAndBadgeCounts(t *testing.T) {
	now := time.Now()
	reg := registryWith(t, &stubProvider{name: "mixed", results: []core.Result{
		result("r1", "Go Repo", "", now, core.RepoMeta{Stars: 5}),
		result("r2", "Go Repo Two", "", now, core.RepoMeta{Stars: 50}),
		result("v1", "Go Video", "", now, core.VideoMeta{Views: 9000}),
		result("a1", "Go Article", "", now, core.ArticleMeta{Views: 3}),
		result("n1", "Go Notes", "", now, core.NoteMeta{Downloads: 7}),
	}})

	svc := NewService(reg, 0)
	resp, err := svc.Search(context.Background(), Params{
		Query: "go", Type: core.TypeRepo, Sort: SortPopularity, Limit: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("filtered results = %d, expected 2 repos", len(resp.Results))
	}
	if resp.Results[0].ID() != "r2" {
		t.Errorf("popularity sort within filtered set, got %s first", resp.Results[0].ID())
	}

	// Badge counts come from the unfiltered list.
	if resp.Counts[core.TypeRepo] != 2 || resp.Counts[core.TypeVideo] != 1 ||
		resp.Counts[core.TypeArticle] != 1 || resp.Counts[core.TypeNote] != 1 {
		t.Errorf("unexpected badge counts: %v", resp.Counts)
	}
}

func TestServiceLimit(t *testing.T) {
	now := time.Now()
	var many []core.Result
	for i := 0; i < 10; i++ {
		many = append(many, result(fmt.Sprintf("r%d", i), "Go Thing", "", now, core.ArticleMeta{}))
	}
	reg := registryWith(t, &stubProvider{name: "bulk", results: many})

	resp, err := NewService(reg, 0).Search(context.Background(), Params{Query: "go", Limit: 3, Sort: SortRelevance})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Errorf("limit not applied: got %d results", len(resp.Results))
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Params
		wantErr bool
	}{
		{
			name: "defaults",
			raw:  "q=react",
			want: Params{Query: "react", Type: core.TypeAll, Sort: SortRelevance, Limit: defaultLimit},
		},
		{
			name: "explicit everything",
			raw:  "q=go&type=video&sort=popularity&limit=5",
			want: Params{Query: "go", Type: core.TypeVideo, Sort: SortPopularity, Limit: 5},
		},
		{name: "bad type", raw: "q=x&type=podcast", wantErr: true},
		{name: "bad sort", raw: "q=x&sort=random", wantErr: true},
		{name: "bad limit", raw: "q=x&limit=zero", wantErr: true},
		{name: "negative limit", raw: "q=x&limit=-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("parsing query: %v", err)
			}
			got, err := ParseParams(values)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseParams: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
