// Package search fans a query out to every configured provider,
// scores and orders the merged results, and exposes a unified
// interface used by both the API server and the CLI.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
)

var logger = log.ForComponent("search")

// Aggregator runs a query against every registered provider
// concurrently and merges the results into a single ranked list.
type Aggregator struct {
	registry *core.Registry
	timeout  time.Duration
}

// NewAggregator creates an aggregator over the given registry.
// timeout bounds each whole fan-out; zero means no bound.
func NewAggregator(registry *core.Registry, timeout time.Duration) *Aggregator {
	return &Aggregator{registry: registry, timeout: timeout}
}

// Scored pairs a result with its relevance score for the query that
// produced it.
type Scored struct {
	core.Result
	Score int
}

// Aggregated is the outcome of one fan-out. SourcesFailed counts
// providers that returned an error; their absence does not fail the
// whole search unless every provider failed.
type Aggregated struct {
	Results       []Scored
	SourcesTotal  int
	SourcesFailed int
}

type providerOutcome struct {
	name    string
	results []core.Result
	err     error
}

// Search fans the query out to all providers. Provider order from the
// registry is preserved in the merged list before ranking, so equal
// scores tie-break deterministically.
func (a *Aggregator) Search(ctx context.Context, query string) (*Aggregated, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Aggregated{}, nil
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	providers := a.registry.All()
	outcomes := make([]providerOutcome, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p core.Provider) {
			defer wg.Done()
			results, err := p.Search(ctx, query)
			outcomes[i] = providerOutcome{name: p.Name(), results: results, err: err}
		}(i, p)
	}
	wg.Wait()

	agg := &Aggregated{SourcesTotal: len(providers)}
	for _, out := range outcomes {
		if out.err != nil {
			logger.Warnf("provider %s failed: %v", out.name, out.err)
			agg.SourcesFailed++
			continue
		}
		for _, r := range out.results {
			// Providers may match on fields we never show (remote
			// full-text search does). Keep only results the user can
			// see the query in.
			if !matchesQuery(r, query) {
				continue
			}
			agg.Results = append(agg.Results, Scored{Result: r, Score: relevance(r, query)})
		}
	}

	if agg.SourcesTotal > 0 && agg.SourcesFailed == agg.SourcesTotal {
		return nil, fmt.Errorf("all %d sources failed", agg.SourcesTotal)
	}

	sortByScore(agg.Results)
	return agg, nil
}

// matchesQuery reports whether the query appears, case-insensitively,
// in the result's title, description, or one of its tags.
func matchesQuery(r core.Result, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Title()), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description()), q) {
		return true
	}
	for _, tag := range r.Tags() {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// relevance scores a result against the query: 2 for a title match,
// 1 otherwise. Results reaching this point already matched somewhere.
func relevance(r core.Result, query string) int {
	if strings.Contains(strings.ToLower(r.Title()), strings.ToLower(query)) {
		return 2
	}
	return 1
}

// sortByScore orders by score descending. The sort is stable so the
// provider merge order decides ties.
func sortByScore(results []Scored) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
