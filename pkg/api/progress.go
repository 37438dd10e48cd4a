package api

import (
	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
	"github.com/Mayank-jangid007/CouseHub/pkg/roadmap"
)

// progressFor returns the progress tracker for a user and path,
// creating it on first use. Anonymous requests share one tracker per
// path under the empty uid.
func (s *Server) progressFor(u *auth.User, pathID string) *roadmap.Progress {
	var uid string
	if u != nil {
		uid = u.UID
	}

	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	byPath, ok := s.progress[uid]
	if !ok {
		byPath = make(map[string]*roadmap.Progress)
		s.progress[uid] = byPath
	}
	pr, ok := byPath[pathID]
	if !ok {
		pr = roadmap.NewProgress(s.deps.Roadmaps.Get(pathID))
		byPath[pathID] = pr
	}
	return pr
}
