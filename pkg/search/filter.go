package search

import (
	"sort"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

// SortMode selects the ordering of a result list.
type SortMode string

const (
	SortRelevance  SortMode = "relevance"
	SortDate       SortMode = "date"
	SortPopularity SortMode = "popularity"
)

// Valid reports whether the mode is one of the defined sort modes.
func (m SortMode) Valid() bool {
	switch m {
	case SortRelevance, SortDate, SortPopularity:
		return true
	}
	return false
}

// FilterByType keeps only results of the given type. TypeAll keeps
// everything. Filtering happens before sorting so sort ranks only the
// visible set.
func FilterByType(results []Scored, t core.ResultType) []Scored {
	if t == core.TypeAll || t == "" {
		return results
	}
	var out []Scored
	for _, r := range results {
		if r.Type() == t {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns the results ordered by the given mode, leaving the
// input untouched. All modes sort stably so equal keys keep their
// previous relative order.
func Sort(results []Scored, mode SortMode) []Scored {
	out := make([]Scored, len(results))
	copy(out, results)
	switch mode {
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		})
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			return core.Popularity(out[i].Meta()) > core.Popularity(out[j].Meta())
		})
	default:
		sortByScore(out)
	}
	return out
}

// CountByType tallies results per type across the full unfiltered
// list, for type-filter badges.
func CountByType(results []Scored) map[core.ResultType]int {
	counts := make(map[core.ResultType]int)
	for _, r := range results {
		counts[r.Type()]++
	}
	return counts
}
