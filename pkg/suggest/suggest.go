// Package suggest produces typeahead completions for the search box
// from a fixed vocabulary of popular queries.
package suggest

import "strings"

// MaxSuggestions caps how many completions one lookup returns.
const MaxSuggestions = 8

// defaultVocabulary lists popular queries in display priority order.
// Matches keep this order, so earlier entries win when the cap hits.
var defaultVocabulary = []string{
	"react hooks",
	"react native",
	"javascript fundamentals",
	"python for beginners",
	"machine learning",
	"data structures and algorithms",
	"web development",
	"golang tutorial",
	"docker compose",
	"kubernetes basics",
	"sql queries",
	"system design",
	"typescript generics",
	"rust ownership",
	"css grid",
	"node.js api",
	"git branching",
	"aws lambda",
}

// Index answers prefix-free substring lookups over a vocabulary.
type Index struct {
	vocabulary []string
	lowered    []string
}

// NewIndex builds an index over the default vocabulary.
func NewIndex() *Index {
	return NewIndexWith(defaultVocabulary)
}

// NewIndexWith builds an index over a custom vocabulary, preserving
// its order.
func NewIndexWith(vocabulary []string) *Index {
	idx := &Index{
		vocabulary: vocabulary,
		lowered:    make([]string, len(vocabulary)),
	}
	for i, v := range vocabulary {
		idx.lowered[i] = strings.ToLower(v)
	}
	return idx
}

// Matches returns vocabulary entries containing the input as a
// case-insensitive substring, in vocabulary order, capped at
// MaxSuggestions. Blank input yields nothing.
func (idx *Index) Matches(input string) []string {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}

	var out []string
	for i, low := range idx.lowered {
		if strings.Contains(low, needle) {
			out = append(out, idx.vocabulary[i])
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}
