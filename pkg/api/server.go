// Package api exposes the HTTP surface: search, suggestions,
// trending, roadmaps, accounts, bookmarks, and the realtime activity
// firehose.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
	"github.com/Mayank-jangid007/CouseHub/pkg/providers/roadmaps"
	"github.com/Mayank-jangid007/CouseHub/pkg/realtime"
	"github.com/Mayank-jangid007/CouseHub/pkg/roadmap"
	"github.com/Mayank-jangid007/CouseHub/pkg/search"
	"github.com/Mayank-jangid007/CouseHub/pkg/store"
	"github.com/Mayank-jangid007/CouseHub/pkg/suggest"
	"github.com/Mayank-jangid007/CouseHub/pkg/summary"
	"github.com/Mayank-jangid007/CouseHub/pkg/trending"
)

var logger = log.ForComponent("api")

// Deps carries the services the server wires together. Roadmaps,
// Auth, Federated, Store, Summarizer, and Hub may be nil; their
// endpoints then report not found or unavailable.
type Deps struct {
	Search     *search.Service
	Suggest    *suggest.Index
	Trending   *trending.Service
	Roadmaps   *roadmaps.Provider
	Auth       *auth.Service
	Federated  *auth.Federated
	Store      *store.Store
	Summarizer *summary.Client
	Hub        *realtime.Hub
}

type Server struct {
	deps Deps

	// Per-user roadmap progress, kept in memory. Keyed by uid then
	// path id; anonymous users share the "" uid.
	progressMu sync.Mutex
	progress   map[string]map[string]*roadmap.Progress
}

func NewServer(deps Deps) *Server {
	return &Server{
		deps:     deps,
		progress: make(map[string]map[string]*roadmap.Progress),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("encoding response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, errName, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: errName, Message: message})
}

type contextKey string

const userKey contextKey = "user"

// userFrom returns the authenticated user stored by requireAuth, or
// nil for anonymous requests.
func userFrom(ctx context.Context) *auth.User {
	u, _ := ctx.Value(userKey).(*auth.User)
	return u
}
