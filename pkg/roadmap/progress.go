package roadmap

import "sync"

// Progress tracks which nodes of a path a user has completed.
// Toggling is idempotent per direction and safe for concurrent use.
type Progress struct {
	mu   sync.Mutex
	path *Path
	done map[string]bool
}

// NewProgress creates an empty progress tracker for a validated path.
func NewProgress(p *Path) *Progress {
	return &Progress{path: p, done: make(map[string]bool)}
}

// Toggle flips completion state for a node and returns the new state.
// Unknown node ids are ignored and report false.
func (pr *Progress) Toggle(nodeID string) bool {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if pr.path.Node(nodeID) == nil {
		return false
	}
	if pr.done[nodeID] {
		delete(pr.done, nodeID)
		return false
	}
	pr.done[nodeID] = true
	return true
}

// Completed reports whether a node is marked complete.
func (pr *Progress) Completed(nodeID string) bool {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.done[nodeID]
}

// CompletedSet returns a copy of the completed node set.
func (pr *Progress) CompletedSet() map[string]bool {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	out := make(map[string]bool, len(pr.done))
	for id := range pr.done {
		out[id] = true
	}
	return out
}

// Percent returns completion as a 0-100 integer.
func (pr *Progress) Percent() int {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if len(pr.path.Nodes) == 0 {
		return 0
	}
	return len(pr.done) * 100 / len(pr.path.Nodes)
}

// Unlocked reports whether all prerequisites of a node are complete.
func (pr *Progress) Unlocked(nodeID string) bool {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.path.Unlocked(nodeID, pr.done)
}
