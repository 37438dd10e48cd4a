package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/search"
)

func scored(id string, t core.ResultType, score int) search.Scored {
	var meta core.Metadata
	switch t {
	case core.TypeRepo:
		meta = core.RepoMeta{Stars: 100}
	case core.TypeVideo:
		meta = core.VideoMeta{Views: 500}
	default:
		meta = core.ArticleMeta{}
	}
	r := core.NewResult(id, "Result "+id, "", "https://example.com/"+id, nil, time.Now(), meta)
	return search.Scored{Result: r, Score: score}
}

func TestSearchLifecycle(t *testing.T) {
	s := NewState()
	if s.Status != Idle {
		t.Fatalf("initial status = %s, want idle", s.Status)
	}

	s = Reduce(s, SearchStarted{Query: "react", Seq: 1})
	if s.Status != Loading || s.Query != "react" {
		t.Fatalf("after start: status=%s query=%q", s.Status, s.Query)
	}

	s = Reduce(s, SearchSucceeded{
		Seq:          1,
		Results:      []search.Scored{scored("a", core.TypeRepo, 2)},
		SourcesTotal: 5,
	})
	if s.Status != Succeeded || len(s.Results) != 1 {
		t.Fatalf("after success: status=%s results=%d", s.Status, len(s.Results))
	}
}

func TestStaleCompletionIgnored(t *testing.T) {
	s := NewState()
	s = Reduce(s, SearchStarted{Query: "re", Seq: 1})
	s = Reduce(s, SearchStarted{Query: "react", Seq: 2})

	// The first search completes late.
	s = Reduce(s, SearchSucceeded{Seq: 1, Results: []search.Scored{scored("stale", core.TypeRepo, 2)}})
	if s.Status != Loading || len(s.Results) != 0 {
		t.Fatalf("stale success applied: status=%s results=%d", s.Status, len(s.Results))
	}

	s = Reduce(s, SearchFailed{Seq: 1, Err: "too late"})
	if s.Status != Loading || s.Err != "" {
		t.Fatalf("stale failure applied: status=%s err=%q", s.Status, s.Err)
	}

	s = Reduce(s, SearchSucceeded{Seq: 2, Results: []search.Scored{scored("fresh", core.TypeRepo, 2)}})
	if s.Status != Succeeded || s.Results[0].ID() != "fresh" {
		t.Fatalf("current completion not applied: status=%s", s.Status)
	}
}

func TestFailureKeepsPreviousResults(t *testing.T) {
	s := NewState()
	s = Reduce(s, SearchStarted{Query: "go", Seq: 1})
	s = Reduce(s, SearchSucceeded{Seq: 1, Results: []search.Scored{scored("a", core.TypeRepo, 2)}})
	s = Reduce(s, SearchStarted{Query: "rust", Seq: 2})
	s = Reduce(s, SearchFailed{Seq: 2, Err: "all sources failed"})

	if s.Status != Failed || s.Err == "" {
		t.Fatalf("status=%s err=%q", s.Status, s.Err)
	}
	if len(s.Results) != 1 || s.Results[0].ID() != "a" {
		t.Errorf("failed search should keep the previous results, have %d", len(s.Results))
	}
}

func TestRecentSearches(t *testing.T) {
	s := NewState()
	for i, q := range []string{"go", "rust", "go", "zig"} {
		s = Reduce(s, SearchStarted{Query: q, Seq: uint64(i + 1)})
	}

	want := []string{"zig", "go", "rust"}
	if len(s.Recent) != len(want) {
		t.Fatalf("recent = %v, want %v", s.Recent, want)
	}
	for i := range want {
		if s.Recent[i] != want[i] {
			t.Errorf("recent[%d] = %q, want %q", i, s.Recent[i], want[i])
		}
	}
}

func TestRecentSearchesCap(t *testing.T) {
	s := NewState()
	for i := 0; i < 15; i++ {
		s = Reduce(s, SearchStarted{Query: fmt.Sprintf("query-%d", i), Seq: uint64(i + 1)})
	}
	if len(s.Recent) != MaxRecent {
		t.Fatalf("recent length = %d, want %d", len(s.Recent), MaxRecent)
	}
	if s.Recent[0] != "query-14" {
		t.Errorf("most recent first, got %q", s.Recent[0])
	}
}

func TestVisibleFilterThenSort(t *testing.T) {
	s := NewState()
	s = Reduce(s, SearchStarted{Query: "go", Seq: 1})
	s = Reduce(s, SearchSucceeded{Seq: 1, Results: []search.Scored{
		scored("repo-low", core.TypeRepo, 1),
		scored("video", core.TypeVideo, 2),
		scored("repo-high", core.TypeRepo, 2),
	}})
	s = Reduce(s, FilterChanged{Type: core.TypeRepo})
	s = Reduce(s, SortChanged{Mode: search.SortRelevance})

	visible := s.Visible()
	if len(visible) != 2 {
		t.Fatalf("visible = %d results, want 2 repos", len(visible))
	}
	if visible[0].ID() != "repo-high" {
		t.Errorf("relevance order within filtered set, got %s first", visible[0].ID())
	}
	// The underlying result set is untouched.
	if len(s.Results) != 3 {
		t.Errorf("filtering must not drop stored results, have %d", len(s.Results))
	}
}

func TestInvalidFilterAndSortIgnored(t *testing.T) {
	s := NewState()
	s = Reduce(s, FilterChanged{Type: core.ResultType("podcast")})
	if s.TypeFilter != core.TypeAll {
		t.Errorf("invalid filter applied: %s", s.TypeFilter)
	}
	s = Reduce(s, SortChanged{Mode: search.SortMode("random")})
	if s.Sort != search.SortRelevance {
		t.Errorf("invalid sort applied: %s", s.Sort)
	}
}

func TestClearedKeepsRecentAndPreferences(t *testing.T) {
	s := NewState()
	s = Reduce(s, SearchStarted{Query: "go", Seq: 1})
	s = Reduce(s, SearchSucceeded{Seq: 1, Results: []search.Scored{scored("a", core.TypeRepo, 2)}})
	s = Reduce(s, SortChanged{Mode: search.SortDate})
	s = Reduce(s, Cleared{})

	if s.Status != Idle || s.Query != "" || len(s.Results) != 0 {
		t.Errorf("clear incomplete: status=%s query=%q results=%d", s.Status, s.Query, len(s.Results))
	}
	if len(s.Recent) != 1 || s.Recent[0] != "go" {
		t.Errorf("clear should keep recent searches, got %v", s.Recent)
	}
	if s.Sort != search.SortDate {
		t.Errorf("clear should keep sort preference, got %s", s.Sort)
	}
}

func TestStoreDispatchAndSubscribe(t *testing.T) {
	var notified []Status
	st := NewStore(nil, nil)
	unsubscribe := st.Subscribe(func(s State) {
		notified = append(notified, s.Status)
	})

	seq := st.NextSeq()
	st.Dispatch(SearchStarted{Query: "go", Seq: seq})
	st.Dispatch(SearchSucceeded{Seq: seq})

	if len(notified) != 2 || notified[0] != Loading || notified[1] != Succeeded {
		t.Fatalf("subscriber saw %v", notified)
	}

	unsubscribe()
	st.Dispatch(Cleared{})
	if len(notified) != 2 {
		t.Error("unsubscribed listener still notified")
	}
}

// fakeSearcher resolves queries from a fixed map, optionally blocking
// on a gate channel first.
type fakeSearcher struct {
	byQuery map[string]*search.Aggregated
	errs    map[string]error
	gates   map[string]chan struct{}
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (*search.Aggregated, error) {
	if gate, ok := f.gates[query]; ok {
		<-gate
	}
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.byQuery[query], nil
}

func TestStoreSearchOrchestration(t *testing.T) {
	searcher := &fakeSearcher{
		byQuery: map[string]*search.Aggregated{
			"go": {
				Results:      []search.Scored{scored("a", core.TypeRepo, 2)},
				SourcesTotal: 3, SourcesFailed: 1,
			},
		},
		errs: map[string]error{"down": errors.New("all 3 sources failed")},
	}
	st := NewStore(searcher, nil)

	s := st.Search(context.Background(), "go")
	if s.Status != Succeeded || len(s.Results) != 1 || s.Counts[core.TypeRepo] != 1 {
		t.Fatalf("after search: status=%s results=%d counts=%v", s.Status, len(s.Results), s.Counts)
	}
	if s.SourcesTotal != 3 || s.SourcesFailed != 1 {
		t.Errorf("source counters = %d/%d", s.SourcesFailed, s.SourcesTotal)
	}

	s = st.Search(context.Background(), "down")
	if s.Status != Failed || s.Err == "" {
		t.Fatalf("after failed search: status=%s err=%q", s.Status, s.Err)
	}
	if len(s.Results) != 1 {
		t.Errorf("failure should keep the previous results, have %d", len(s.Results))
	}

	s = st.Search(context.Background(), "   ")
	if s.Status != Idle || s.Query != "" {
		t.Errorf("blank query should clear: status=%s query=%q", s.Status, s.Query)
	}
}

func TestStoreSearchNewestWins(t *testing.T) {
	gate := make(chan struct{})
	searcher := &fakeSearcher{
		byQuery: map[string]*search.Aggregated{
			"slow": {Results: []search.Scored{scored("stale", core.TypeRepo, 1)}, SourcesTotal: 1},
			"fast": {Results: []search.Scored{scored("fresh", core.TypeRepo, 2)}, SourcesTotal: 1},
		},
		gates: map[string]chan struct{}{"slow": gate},
	}
	st := NewStore(searcher, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.Search(context.Background(), "slow")
	}()
	for st.State().Query != "slow" {
		time.Sleep(time.Millisecond)
	}

	st.Search(context.Background(), "fast")
	close(gate)
	<-done

	s := st.State()
	if s.Status != Succeeded || len(s.Results) != 1 || s.Results[0].ID() != "fresh" {
		t.Fatalf("superseded search overwrote the newer one: status=%s results=%v", s.Status, s.Results)
	}
}

func TestStoreHistorySink(t *testing.T) {
	var recorded []string
	st := NewStore(nil, func(q string) { recorded = append(recorded, q) })

	st.Dispatch(SearchStarted{Query: "go", Seq: st.NextSeq()})
	st.Dispatch(SearchStarted{Query: "", Seq: st.NextSeq()})
	st.Dispatch(SearchStarted{Query: "rust", Seq: st.NextSeq()})

	if len(recorded) != 2 || recorded[0] != "go" || recorded[1] != "rust" {
		t.Fatalf("history sink saw %v", recorded)
	}
}
