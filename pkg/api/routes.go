package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search", s.optionalAuth(s.HandleSearch))
	mux.HandleFunc("GET /api/suggest", s.HandleSuggest)
	mux.HandleFunc("GET /api/trending", s.HandleTrending)
	mux.HandleFunc("GET /api/explore", s.HandleExplore)

	mux.HandleFunc("GET /api/roadmaps", s.HandleListRoadmaps)
	mux.HandleFunc("GET /api/roadmaps/{id}", s.optionalAuth(s.HandleGetRoadmap))
	mux.HandleFunc("POST /api/roadmaps/{id}/nodes/{node}/toggle", s.optionalAuth(s.HandleToggleNode))

	mux.HandleFunc("POST /api/auth/register", s.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", s.HandleLogin)
	mux.HandleFunc("GET /api/auth/me", s.requireAuth(s.HandleMe))
	mux.HandleFunc("PUT /api/auth/preferences", s.requireAuth(s.HandlePreferences))
	mux.HandleFunc("GET /api/auth/federated/{provider}", s.HandleFederatedStart)
	mux.HandleFunc("GET /api/auth/federated/{provider}/callback", s.HandleFederatedCallback)

	mux.HandleFunc("GET /api/bookmarks", s.requireAuth(s.HandleListBookmarks))
	mux.HandleFunc("POST /api/bookmarks/{id}", s.requireAuth(s.HandleAddBookmark))
	mux.HandleFunc("DELETE /api/bookmarks/{id}", s.requireAuth(s.HandleRemoveBookmark))
	mux.HandleFunc("GET /api/history", s.requireAuth(s.HandleHistory))

	mux.HandleFunc("GET /api/firehose/ws", s.HandleFirehoseWS)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
