package core

import (
	"fmt"
	"strings"
	"time"
)

// ResultType is the closed category tag for discovered resources.
type ResultType string

const (
	TypeRepo    ResultType = "repo"
	TypeVideo   ResultType = "video"
	TypeArticle ResultType = "article"
	TypeNote    ResultType = "note"
	TypeRoadmap ResultType = "roadmap"

	// TypeAll is a filter value only; no result ever carries it.
	TypeAll ResultType = "all"
)

// ResultTypes lists every concrete result type in display order.
var ResultTypes = []ResultType{TypeRepo, TypeVideo, TypeArticle, TypeNote, TypeRoadmap}

// Valid reports whether t is a concrete result type.
func (t ResultType) Valid() bool {
	for _, rt := range ResultTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// Difficulty buckets a resource by required experience.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Metadata is a tagged union: each variant carries only the fields
// valid for its result type, so consumers never probe for fields that
// cannot exist on a given kind.
type Metadata interface {
	Kind() ResultType
}

// RepoMeta describes a code repository result.
type RepoMeta struct {
	Stars      int
	Forks      int
	Language   string
	Author     string
	Difficulty Difficulty
	Rating     float64
}

func (RepoMeta) Kind() ResultType { return TypeRepo }

// VideoMeta describes a video result.
type VideoMeta struct {
	Views      int
	Duration   string
	Channel    string
	Thumbnail  string
	Difficulty Difficulty
	Rating     float64
}

func (VideoMeta) Kind() ResultType { return TypeVideo }

// ArticleMeta describes an article or blog-post result.
type ArticleMeta struct {
	Views      int
	ReadTime   string
	Author     string
	Difficulty Difficulty
	Rating     float64
}

func (ArticleMeta) Kind() ResultType { return TypeArticle }

// NoteMeta describes a shared-notes result.
type NoteMeta struct {
	Downloads  int
	Author     string
	Format     string
	Difficulty Difficulty
	Rating     float64
}

func (NoteMeta) Kind() ResultType { return TypeNote }

// RoadmapMeta describes a structured learning-path result.
type RoadmapMeta struct {
	Author            string
	Nodes             int
	EstimatedDuration string
	Difficulty        Difficulty
	Rating            float64
}

func (RoadmapMeta) Kind() ResultType { return TypeRoadmap }

// Popularity returns the popularity counter for a metadata variant:
// stars when the variant has stars, otherwise views, otherwise
// downloads. Variants without a counter report 0.
func Popularity(m Metadata) int {
	switch v := m.(type) {
	case RepoMeta:
		return v.Stars
	case VideoMeta:
		return v.Views
	case ArticleMeta:
		return v.Views
	case NoteMeta:
		return v.Downloads
	default:
		return 0
	}
}

// Rating returns the numeric rating for any metadata variant.
func Rating(m Metadata) float64 {
	switch v := m.(type) {
	case RepoMeta:
		return v.Rating
	case VideoMeta:
		return v.Rating
	case ArticleMeta:
		return v.Rating
	case NoteMeta:
		return v.Rating
	case RoadmapMeta:
		return v.Rating
	default:
		return 0
	}
}

// DifficultyOf returns the difficulty bucket for any metadata variant.
func DifficultyOf(m Metadata) Difficulty {
	switch v := m.(type) {
	case RepoMeta:
		return v.Difficulty
	case VideoMeta:
		return v.Difficulty
	case ArticleMeta:
		return v.Difficulty
	case NoteMeta:
		return v.Difficulty
	case RoadmapMeta:
		return v.Difficulty
	default:
		return ""
	}
}

// Result represents one discovered learning resource, normalized into
// a common shape regardless of which provider produced it.
//
// Results are immutable once created. ID() must be stable per source
// record so bookmarks survive re-fetches. CreatedAt() must be a valid
// point in time for every result; providers that cannot determine a
// creation time must not emit the record.
type Result interface {
	// ID returns the opaque unique identifier, stable per source record.
	// Providers prefix ids with their type ("repo-123", "video-abc").
	ID() string

	// Title returns the display title.
	Title() string

	// Description returns the short display description.
	Description() string

	// URL returns the destination link.
	URL() string

	// Type returns the concrete result category.
	Type() ResultType

	// Tags returns free-form tags in relevance order. May be empty.
	Tags() []string

	// CreatedAt returns when the underlying resource was created.
	// Used for recency sorting.
	CreatedAt() time.Time

	// Meta returns the typed metadata variant for this result's kind.
	Meta() Metadata

	// AISummary returns the generated abstract, or "" when generation
	// was not performed or failed.
	AISummary() string

	// PrettyText returns a multi-line human-readable rendering for
	// terminal display.
	PrettyText() string

	// Summary returns a one-line rendering, kept short for lists.
	Summary() string
}

// GenericResult is the concrete Result used by every provider. The
// per-kind shape lives entirely in the Metadata variant, so providers
// only differ in how they populate it.
type GenericResult struct {
	id          string
	title       string
	description string
	url         string
	tags        []string
	createdAt   time.Time
	meta        Metadata
	aiSummary   string
}

// NewResult builds a result. meta must be non-nil; its Kind() decides
// the result type.
func NewResult(id, title, description, url string, tags []string, createdAt time.Time, meta Metadata) *GenericResult {
	return &GenericResult{
		id:          id,
		title:       title,
		description: description,
		url:         url,
		tags:        tags,
		createdAt:   createdAt,
		meta:        meta,
	}
}

// WithAISummary returns a copy of r carrying the generated abstract.
func (r *GenericResult) WithAISummary(summary string) *GenericResult {
	cp := *r
	cp.aiSummary = summary
	return &cp
}

func (r *GenericResult) ID() string           { return r.id }
func (r *GenericResult) Title() string        { return r.title }
func (r *GenericResult) Description() string  { return r.description }
func (r *GenericResult) URL() string          { return r.url }
func (r *GenericResult) Type() ResultType     { return r.meta.Kind() }
func (r *GenericResult) Tags() []string       { return r.tags }
func (r *GenericResult) CreatedAt() time.Time { return r.createdAt }
func (r *GenericResult) Meta() Metadata       { return r.meta }
func (r *GenericResult) AISummary() string    { return r.aiSummary }

func typeIcon(t ResultType) string {
	switch t {
	case TypeRepo:
		return "📦"
	case TypeVideo:
		return "🎬"
	case TypeArticle:
		return "📰"
	case TypeNote:
		return "📝"
	case TypeRoadmap:
		return "🗺️"
	default:
		return "📄"
	}
}

// PrettyText renders the result for terminal output, with the fields
// that exist for its metadata variant.
func (r *GenericResult) PrettyText() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s %s", typeIcon(r.Type()), r.title))
	if r.description != "" {
		parts = append(parts, fmt.Sprintf("  %s", r.description))
	}
	parts = append(parts, fmt.Sprintf("  URL: %s", r.url))
	parts = append(parts, fmt.Sprintf("  Created: %s", r.createdAt.Format("2006-01-02")))

	switch m := r.meta.(type) {
	case RepoMeta:
		parts = append(parts, fmt.Sprintf("  ⭐ %d  🍴 %d  %s by %s", m.Stars, m.Forks, m.Language, m.Author))
	case VideoMeta:
		parts = append(parts, fmt.Sprintf("  👀 %d views  ⏱ %s  %s", m.Views, m.Duration, m.Channel))
	case ArticleMeta:
		parts = append(parts, fmt.Sprintf("  👀 %d views  📖 %s by %s", m.Views, m.ReadTime, m.Author))
	case NoteMeta:
		parts = append(parts, fmt.Sprintf("  ⬇ %d downloads  %s by %s", m.Downloads, m.Format, m.Author))
	case RoadmapMeta:
		parts = append(parts, fmt.Sprintf("  🧩 %d nodes by %s", m.Nodes, m.Author))
	}

	if d := DifficultyOf(r.meta); d != "" {
		parts = append(parts, fmt.Sprintf("  Level: %s  Rating: %.1f", d, Rating(r.meta)))
	}
	if len(r.tags) > 0 {
		parts = append(parts, fmt.Sprintf("  Tags: %s", strings.Join(r.tags, ", ")))
	}
	if r.aiSummary != "" {
		parts = append(parts, fmt.Sprintf("  AI: %s", r.aiSummary))
	}
	return strings.Join(parts, "\n")
}

// Summary returns a compact one-line rendering.
func (r *GenericResult) Summary() string {
	return fmt.Sprintf("%s %s", typeIcon(r.Type()), r.title)
}
