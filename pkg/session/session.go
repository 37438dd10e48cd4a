// Package session holds the client-visible search state as a single
// value evolved by a pure reducer. All mutation goes through actions;
// the store serializes dispatches and notifies subscribers after each
// state change.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/search"
)

// Status tracks where the current search stands.
type Status string

const (
	Idle      Status = "idle"
	Loading   Status = "loading"
	Succeeded Status = "succeeded"
	Failed    Status = "failed"
)

// MaxRecent caps the recent-searches list.
const MaxRecent = 10

// State is the complete search session. It is a value; reducers
// return new states and never mutate slices in place.
type State struct {
	Query  string
	Status Status
	Err    string

	// Seq identifies the in-flight search. Completions carrying an
	// older seq are stale and ignored.
	Seq uint64

	Results       []search.Scored
	Counts        map[core.ResultType]int
	SourcesTotal  int
	SourcesFailed int

	TypeFilter core.ResultType
	Sort       search.SortMode

	Recent []string
}

// NewState returns the initial session state.
func NewState() State {
	return State{
		Status:     Idle,
		TypeFilter: core.TypeAll,
		Sort:       search.SortRelevance,
	}
}

// Visible applies the current type filter and sort to the result set.
// The filter narrows first, then the sort ranks the narrowed list.
func (s State) Visible() []search.Scored {
	return search.Sort(search.FilterByType(s.Results, s.TypeFilter), s.Sort)
}

// Action is a request to evolve the state.
type Action interface{ isAction() }

// SearchStarted begins a new search. Seq must be strictly greater
// than any previous search's seq.
type SearchStarted struct {
	Query string
	Seq   uint64
}

// SearchSucceeded delivers results for the search identified by Seq.
type SearchSucceeded struct {
	Seq           uint64
	Results       []search.Scored
	Counts        map[core.ResultType]int
	SourcesTotal  int
	SourcesFailed int
}

// SearchFailed marks the search identified by Seq as failed.
type SearchFailed struct {
	Seq uint64
	Err string
}

// FilterChanged switches the visible result type.
type FilterChanged struct{ Type core.ResultType }

// SortChanged switches the result ordering.
type SortChanged struct{ Mode search.SortMode }

// Cleared resets query, results, and status but keeps recent
// searches and view preferences.
type Cleared struct{}

func (SearchStarted) isAction()   {}
func (SearchSucceeded) isAction() {}
func (SearchFailed) isAction()    {}
func (FilterChanged) isAction()   {}
func (SortChanged) isAction()     {}
func (Cleared) isAction()         {}

// Reduce evolves a state by one action. It is pure: same inputs, same
// output, no side effects.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SearchStarted:
		s.Query = a.Query
		s.Seq = a.Seq
		s.Status = Loading
		s.Err = ""
		s.Recent = pushRecent(s.Recent, a.Query)
		return s

	case SearchSucceeded:
		if a.Seq != s.Seq {
			return s
		}
		s.Status = Succeeded
		s.Results = a.Results
		s.Counts = a.Counts
		s.SourcesTotal = a.SourcesTotal
		s.SourcesFailed = a.SourcesFailed
		return s

	case SearchFailed:
		if a.Seq != s.Seq {
			return s
		}
		// Prior results stay visible behind the error message.
		s.Status = Failed
		s.Err = a.Err
		return s

	case FilterChanged:
		if a.Type.Valid() {
			s.TypeFilter = a.Type
		}
		return s

	case SortChanged:
		if a.Mode.Valid() {
			s.Sort = a.Mode
		}
		return s

	case Cleared:
		s.Query = ""
		s.Status = Idle
		s.Err = ""
		s.Results = nil
		s.Counts = nil
		s.SourcesTotal = 0
		s.SourcesFailed = 0
		return s
	}
	return s
}

// pushRecent prepends query to recent, deduplicating and capping at
// MaxRecent. Blank queries are not recorded.
func pushRecent(recent []string, query string) []string {
	if query == "" {
		return recent
	}
	out := make([]string, 0, len(recent)+1)
	out = append(out, query)
	for _, q := range recent {
		if q == query {
			continue
		}
		out = append(out, q)
		if len(out) == MaxRecent {
			break
		}
	}
	return out
}

// HistorySink receives each recorded search query, for persisting a
// user's history outside the session.
type HistorySink func(query string)

// Searcher runs one fan-out for a query. *search.Aggregator
// satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Aggregated, error)
}

// Store serializes dispatches over a State and fans state changes out
// to subscribers.
type Store struct {
	mu       sync.Mutex
	state    State
	nextSeq  uint64
	subs     map[int]func(State)
	nextSub  int
	searcher Searcher
	history  HistorySink
}

// NewStore creates a store at the initial state. searcher backs the
// Search orchestration and may be nil when callers dispatch completion
// actions themselves; history may be nil.
func NewStore(searcher Searcher, history HistorySink) *Store {
	return &Store{
		state:    NewState(),
		subs:     make(map[int]func(State)),
		searcher: searcher,
		history:  history,
	}
}

// Search runs one full search cycle: it claims a sequence number,
// dispatches SearchStarted, runs the fan-out, and dispatches the
// matching completion. When several Search calls overlap, the
// reducer's seq guard makes the newest one win regardless of which
// fan-out finishes last.
func (st *Store) Search(ctx context.Context, query string) State {
	query = strings.TrimSpace(query)
	if query == "" {
		return st.Dispatch(Cleared{})
	}

	seq := st.NextSeq()
	st.Dispatch(SearchStarted{Query: query, Seq: seq})

	agg, err := st.searcher.Search(ctx, query)
	if err != nil {
		return st.Dispatch(SearchFailed{Seq: seq, Err: err.Error()})
	}
	return st.Dispatch(SearchSucceeded{
		Seq:           seq,
		Results:       agg.Results,
		Counts:        search.CountByType(agg.Results),
		SourcesTotal:  agg.SourcesTotal,
		SourcesFailed: agg.SourcesFailed,
	})
}

// State returns a snapshot of the current state.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// NextSeq allocates a sequence number for a new search.
func (st *Store) NextSeq() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.nextSeq++
	return st.nextSeq
}

// Dispatch applies an action and notifies subscribers with the new
// state. Dispatches are serialized; subscribers run outside the lock.
func (st *Store) Dispatch(a Action) State {
	st.mu.Lock()
	st.state = Reduce(st.state, a)
	next := st.state
	subs := make([]func(State), 0, len(st.subs))
	for _, fn := range st.subs {
		subs = append(subs, fn)
	}
	history := st.history
	st.mu.Unlock()

	if started, ok := a.(SearchStarted); ok && history != nil && started.Query != "" {
		history(started.Query)
	}
	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers a listener for state changes and returns an
// unsubscribe function.
func (st *Store) Subscribe(fn func(State)) func() {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}
