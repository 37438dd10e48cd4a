package api

import (
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/roadmap"
	"github.com/Mayank-jangid007/CouseHub/pkg/store"
	"github.com/Mayank-jangid007/CouseHub/pkg/trending"
)

// ResultResponse is one search result on the wire. Meta holds the
// type-specific fields flattened into a generic map.
type ResultResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	URL         string                 `json:"url"`
	Type        core.ResultType        `json:"type"`
	Tags        []string               `json:"tags,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	Score       int                    `json:"score,omitempty"`
	Meta        map[string]interface{} `json:"meta"`
	AISummary   string                 `json:"ai_summary,omitempty"`
}

type SearchResponse struct {
	Query         string                  `json:"query"`
	Results       []ResultResponse        `json:"results"`
	Count         int                     `json:"count"`
	Counts        map[core.ResultType]int `json:"counts"`
	SourcesTotal  int                     `json:"sources_total"`
	SourcesFailed int                     `json:"sources_failed"`
}

type SuggestResponse struct {
	Input       string   `json:"input"`
	Suggestions []string `json:"suggestions"`
}

type TrendingResponse struct {
	Results     []ResultResponse `json:"results"`
	Count       int              `json:"count"`
	RefreshedAt time.Time        `json:"refreshed_at"`
}

type ExploreResponse struct {
	Categories []trending.Category `json:"categories"`
	Count      int                 `json:"count"`
}

type RoadmapListResponse struct {
	Roadmaps []RoadmapSummary `json:"roadmaps"`
	Count    int              `json:"count"`
}

// RoadmapSummary omits the node graph for list views.
type RoadmapSummary struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Difficulty        core.Difficulty `json:"difficulty"`
	EstimatedDuration string          `json:"estimated_duration"`
	Rating            float64         `json:"rating"`
	Nodes             int             `json:"nodes"`
	CompletedBy       int             `json:"completed_by"`
}

type RoadmapResponse struct {
	Roadmap   *roadmap.Path   `json:"roadmap"`
	Completed map[string]bool `json:"completed"`
	Percent   int             `json:"percent"`
}

type ToggleNodeResponse struct {
	NodeID    string `json:"node_id"`
	Completed bool   `json:"completed"`
	Percent   int    `json:"percent"`
}

type BookmarksResponse struct {
	Bookmarks []store.Bookmark `json:"bookmarks"`
	Count     int              `json:"count"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

type HistoryResponse struct {
	Searches []string `json:"searches"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// metaMap flattens a metadata variant for JSON clients.
func metaMap(m core.Metadata) map[string]interface{} {
	switch m := m.(type) {
	case core.RepoMeta:
		return map[string]interface{}{
			"stars": m.Stars, "forks": m.Forks, "language": m.Language,
			"author": m.Author, "difficulty": m.Difficulty, "rating": m.Rating,
		}
	case core.VideoMeta:
		return map[string]interface{}{
			"views": m.Views, "duration": m.Duration, "channel": m.Channel,
			"thumbnail": m.Thumbnail, "difficulty": m.Difficulty, "rating": m.Rating,
		}
	case core.ArticleMeta:
		return map[string]interface{}{
			"views": m.Views, "read_time": m.ReadTime, "author": m.Author,
			"difficulty": m.Difficulty, "rating": m.Rating,
		}
	case core.NoteMeta:
		return map[string]interface{}{
			"downloads": m.Downloads, "author": m.Author, "format": m.Format,
			"difficulty": m.Difficulty, "rating": m.Rating,
		}
	case core.RoadmapMeta:
		return map[string]interface{}{
			"author": m.Author, "nodes": m.Nodes, "estimated_duration": m.EstimatedDuration,
			"difficulty": m.Difficulty, "rating": m.Rating,
		}
	}
	return map[string]interface{}{}
}

func toResultResponse(r core.Result, score int) ResultResponse {
	return ResultResponse{
		ID:          r.ID(),
		Title:       r.Title(),
		Description: r.Description(),
		URL:         r.URL(),
		Type:        r.Type(),
		Tags:        r.Tags(),
		CreatedAt:   r.CreatedAt(),
		Score:       score,
		Meta:        metaMap(r.Meta()),
		AISummary:   r.AISummary(),
	}
}

func toRoadmapSummary(p *roadmap.Path) RoadmapSummary {
	return RoadmapSummary{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		Category:          p.Category,
		Difficulty:        p.Difficulty,
		EstimatedDuration: p.EstimatedDuration,
		Rating:            p.Rating,
		Nodes:             len(p.Nodes),
		CompletedBy:       p.CompletedBy,
	}
}
