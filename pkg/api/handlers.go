package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/realtime"
	"github.com/Mayank-jangid007/CouseHub/pkg/search"
	"github.com/Mayank-jangid007/CouseHub/pkg/trending"
	"github.com/Mayank-jangid007/CouseHub/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseParams(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_params", err.Error())
		return
	}

	resp, err := s.deps.Search.Search(r.Context(), params)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "search_failed", err.Error())
		return
	}

	results := make([]ResultResponse, 0, len(resp.Results))
	for _, sr := range resp.Results {
		rr := toResultResponse(sr.Result, sr.Score)
		if s.deps.Summarizer != nil && rr.AISummary == "" && r.URL.Query().Get("summaries") == "true" {
			rr.AISummary = s.deps.Summarizer.Generate(r.Context(), sr.Result)
		}
		results = append(results, rr)
	}

	if s.deps.Hub != nil && params.Query != "" {
		var uid string
		if u := userFrom(r.Context()); u != nil {
			uid = u.UID
		}
		s.deps.Hub.Broadcast(realtime.ActivityEvent{
			Kind:        realtime.EventSearch,
			Query:       params.Query,
			ResultCount: len(results),
			UID:         uid,
		})
	}

	if s.deps.Store != nil && params.Query != "" {
		if u := userFrom(r.Context()); u != nil {
			if err := s.deps.Store.AppendSearch(r.Context(), u.UID, params.Query); err != nil {
				logger.Warnf("recording history for %s: %v", u.UID, err)
			}
		}
	}

	s.writeJSON(w, http.StatusOK, SearchResponse{
		Query:         params.Query,
		Results:       results,
		Count:         len(results),
		Counts:        resp.Counts,
		SourcesTotal:  resp.SourcesTotal,
		SourcesFailed: resp.SourcesFailed,
	})
}

func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("q")
	suggestions := s.deps.Suggest.Matches(input)
	if suggestions == nil {
		suggestions = []string{}
	}
	s.writeJSON(w, http.StatusOK, SuggestResponse{Input: input, Suggestions: suggestions})
}

func (s *Server) HandleTrending(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid_params", "limit must be a positive integer")
			return
		}
		limit = n
	}

	items := s.deps.Trending.Trending(limit)
	results := make([]ResultResponse, 0, len(items))
	for _, item := range items {
		results = append(results, toResultResponse(item, 0))
	}
	s.writeJSON(w, http.StatusOK, TrendingResponse{
		Results:     results,
		Count:       len(results),
		RefreshedAt: s.deps.Trending.RefreshedAt(),
	})
}

func (s *Server) HandleExplore(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	difficulty := core.Difficulty(r.URL.Query().Get("difficulty"))

	categories := s.deps.Trending.FilterCategories(query, difficulty)
	if categories == nil {
		categories = []trending.Category{}
	}
	s.writeJSON(w, http.StatusOK, ExploreResponse{Categories: categories, Count: len(categories)})
}

func (s *Server) HandleListRoadmaps(w http.ResponseWriter, r *http.Request) {
	if s.deps.Roadmaps == nil {
		s.writeError(w, http.StatusServiceUnavailable, "roadmaps_disabled", "Roadmaps provider is not configured")
		return
	}

	paths := s.deps.Roadmaps.List()
	summaries := make([]RoadmapSummary, 0, len(paths))
	for _, p := range paths {
		summaries = append(summaries, toRoadmapSummary(p))
	}
	s.writeJSON(w, http.StatusOK, RoadmapListResponse{Roadmaps: summaries, Count: len(summaries)})
}

func (s *Server) HandleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	if s.deps.Roadmaps == nil {
		s.writeError(w, http.StatusServiceUnavailable, "roadmaps_disabled", "Roadmaps provider is not configured")
		return
	}

	id := r.PathValue("id")
	path := s.deps.Roadmaps.Get(id)
	if path == nil {
		s.writeError(w, http.StatusNotFound, "not_found", "No roadmap with id "+id)
		return
	}

	pr := s.progressFor(userFrom(r.Context()), path.ID)
	s.writeJSON(w, http.StatusOK, RoadmapResponse{
		Roadmap:   path,
		Completed: pr.CompletedSet(),
		Percent:   pr.Percent(),
	})
}

func (s *Server) HandleToggleNode(w http.ResponseWriter, r *http.Request) {
	if s.deps.Roadmaps == nil {
		s.writeError(w, http.StatusServiceUnavailable, "roadmaps_disabled", "Roadmaps provider is not configured")
		return
	}

	id := r.PathValue("id")
	nodeID := r.PathValue("node")

	path := s.deps.Roadmaps.Get(id)
	if path == nil {
		s.writeError(w, http.StatusNotFound, "not_found", "No roadmap with id "+id)
		return
	}
	if path.Node(nodeID) == nil {
		s.writeError(w, http.StatusNotFound, "not_found", "No node "+nodeID+" in roadmap "+id)
		return
	}

	pr := s.progressFor(userFrom(r.Context()), path.ID)
	completed := pr.Toggle(nodeID)
	s.writeJSON(w, http.StatusOK, ToggleNodeResponse{
		NodeID:    nodeID,
		Completed: completed,
		Percent:   pr.Percent(),
	})
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if s.deps.Auth == nil {
		s.writeError(w, http.StatusServiceUnavailable, "auth_disabled", "Authentication is not configured")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	u, token, err := s.deps.Auth.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if errors.Is(err, auth.ErrEmailTaken) {
		s.writeError(w, http.StatusConflict, "email_taken", "That email is already registered")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "registration_failed", err.Error())
		return
	}

	s.writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(u)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if s.deps.Auth == nil {
		s.writeError(w, http.StatusServiceUnavailable, "auth_disabled", "Authentication is not configured")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	u, token, err := s.deps.Auth.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.writeError(w, http.StatusUnauthorized, "invalid_credentials", "Wrong email or password")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "login_failed", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(u)})
}

func (s *Server) HandleMe(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())

	var prefs auth.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}
	if err := s.deps.Auth.UpdatePreferences(r.Context(), u.UID, prefs); err != nil {
		s.writeError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) HandleFederatedStart(w http.ResponseWriter, r *http.Request) {
	if s.deps.Federated == nil {
		s.writeError(w, http.StatusServiceUnavailable, "auth_disabled", "Federated sign-in is not configured")
		return
	}

	provider := auth.FederatedProvider(r.PathValue("provider"))
	state := r.URL.Query().Get("state")
	if state == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_params", "Missing state parameter")
		return
	}

	url, err := s.deps.Federated.AuthURL(provider, state)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "unknown_provider", err.Error())
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Server) HandleFederatedCallback(w http.ResponseWriter, r *http.Request) {
	if s.deps.Federated == nil || s.deps.Auth == nil {
		s.writeError(w, http.StatusServiceUnavailable, "auth_disabled", "Federated sign-in is not configured")
		return
	}

	provider := auth.FederatedProvider(r.PathValue("provider"))
	code := r.URL.Query().Get("code")
	if code == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_params", "Missing code parameter")
		return
	}

	identity, err := s.deps.Federated.Exchange(r.Context(), provider, code)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "exchange_failed", err.Error())
		return
	}

	u, token, err := s.deps.Auth.CompleteFederated(r.Context(), identity)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "login_failed", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(u)})
}

func (s *Server) HandleListBookmarks(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "store_disabled", "Persistence is not configured")
		return
	}

	u := userFrom(r.Context())
	marks, err := s.deps.Store.Bookmarks(r.Context(), u.UID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, BookmarksResponse{Bookmarks: marks, Count: len(marks)})
}

func (s *Server) HandleAddBookmark(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "store_disabled", "Persistence is not configured")
		return
	}

	u := userFrom(r.Context())
	resourceID := r.PathValue("id")
	if err := s.deps.Store.AddBookmark(r.Context(), u.UID, resourceID); err != nil {
		s.writeError(w, http.StatusBadRequest, "bookmark_failed", err.Error())
		return
	}

	if s.deps.Hub != nil {
		s.deps.Hub.Broadcast(realtime.ActivityEvent{
			Kind:       realtime.EventBookmarkAdded,
			UID:        u.UID,
			ResourceID: resourceID,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "store_disabled", "Persistence is not configured")
		return
	}

	u := userFrom(r.Context())
	resourceID := r.PathValue("id")
	if err := s.deps.Store.RemoveBookmark(r.Context(), u.UID, resourceID); err != nil {
		s.writeError(w, http.StatusInternalServerError, "bookmark_failed", err.Error())
		return
	}

	if s.deps.Hub != nil {
		s.deps.Hub.Broadcast(realtime.ActivityEvent{
			Kind:       realtime.EventBookmarkRemoved,
			UID:        u.UID,
			ResourceID: resourceID,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "store_disabled", "Persistence is not configured")
		return
	}

	u := userFrom(r.Context())
	searches, err := s.deps.Store.RecentSearches(r.Context(), u.UID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if searches == nil {
		searches = []string{}
	}
	s.writeJSON(w, http.StatusOK, HistoryResponse{Searches: searches})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version.APIVersion(),
	})
}

func toUserResponse(u *auth.User) UserResponse {
	return UserResponse{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Provider:    u.Provider,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
