package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

const defaultLimit = 50

// Params carries one search request. Zero values mean "no filter",
// "relevance order", and the default limit.
type Params struct {
	Query string
	Type  core.ResultType
	Sort  SortMode
	Limit int
}

// ParseParams extracts search parameters from URL query values,
// applying defaults and rejecting unknown filter or sort names.
func ParseParams(values url.Values) (Params, error) {
	p := Params{
		Query: values.Get("q"),
		Type:  core.TypeAll,
		Sort:  SortRelevance,
		Limit: defaultLimit,
	}

	if t := values.Get("type"); t != "" {
		rt := core.ResultType(t)
		if !rt.Valid() {
			return Params{}, fmt.Errorf("unknown result type %q", t)
		}
		p.Type = rt
	}
	if s := values.Get("sort"); s != "" {
		mode := SortMode(s)
		if !mode.Valid() {
			return Params{}, fmt.Errorf("unknown sort mode %q", s)
		}
		p.Sort = mode
	}
	if l := values.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			return Params{}, fmt.Errorf("invalid limit %q", l)
		}
		p.Limit = n
	}

	return p, nil
}

// Response is a ranked, filtered view over one fan-out, plus the
// unfiltered per-type counts for filter badges.
type Response struct {
	Results       []Scored
	Counts        map[core.ResultType]int
	SourcesTotal  int
	SourcesFailed int
}

// Service ties the aggregator to filtering and sorting. It is the
// single entry point both the API and the CLI search through.
type Service struct {
	agg *Aggregator
}

func NewService(registry *core.Registry, timeout time.Duration) *Service {
	return &Service{agg: NewAggregator(registry, timeout)}
}

// Search runs the fan-out and shapes the result set: counts are taken
// over the full merged list, then the type filter is applied, then the
// sort, then the limit.
func (s *Service) Search(ctx context.Context, p Params) (*Response, error) {
	agg, err := s.agg.Search(ctx, p.Query)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Counts:        CountByType(agg.Results),
		SourcesTotal:  agg.SourcesTotal,
		SourcesFailed: agg.SourcesFailed,
	}

	results := Sort(FilterByType(agg.Results, p.Type), p.Sort)

	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	resp.Results = results

	return resp, nil
}
