// Package roadmap models structured learning paths: directed acyclic
// graphs of nodes a learner works through in prerequisite order.
package roadmap

import (
	"fmt"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

// NodeType classifies a roadmap node.
type NodeType string

const (
	Milestone  NodeType = "milestone"
	Topic      NodeType = "topic"
	Project    NodeType = "project"
	Assessment NodeType = "assessment"
)

// Position is 2-D layout information, unused by any logic here.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ResourceCounts summarizes how many resources of each kind back a node.
type ResourceCounts struct {
	Repos    int `json:"repos"`
	Videos   int `json:"videos"`
	Articles int `json:"articles"`
	Notes    int `json:"notes"`
}

// Node is one step in a learning path. ID is unique within its path.
type Node struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Type          NodeType        `json:"type"`
	Position      Position        `json:"position"`
	Prerequisites []string        `json:"prerequisites"`
	Resources     ResourceCounts  `json:"resources"`
	EstimatedTime string          `json:"estimated_time"`
	Difficulty    core.Difficulty `json:"difficulty"`
}

// Connection is a directed edge between two nodes of the same path.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Path is a complete learning path.
type Path struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Difficulty        core.Difficulty `json:"difficulty"`
	EstimatedDuration string          `json:"estimated_duration"`
	Rating            float64         `json:"rating"`
	Tags              []string        `json:"tags"`
	CompletedBy       int             `json:"completed_by"`
	Nodes             []Node          `json:"nodes"`
	Connections       []Connection    `json:"connections"`
}

// Validate checks the structural contract of a path: node ids unique,
// prerequisites and connections referencing existing nodes, and no
// cycles in the combined edge set. Paths that fail validation are
// producer bugs and must be rejected on load.
func (p *Path) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("path missing id")
	}
	if len(p.Nodes) == 0 {
		return fmt.Errorf("path %s has no nodes", p.ID)
	}

	nodes := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		if n.ID == "" {
			return fmt.Errorf("path %s has a node with empty id", p.ID)
		}
		if nodes[n.ID] {
			return fmt.Errorf("path %s has duplicate node id %s", p.ID, n.ID)
		}
		nodes[n.ID] = true
	}

	for _, n := range p.Nodes {
		for _, pre := range n.Prerequisites {
			if !nodes[pre] {
				return fmt.Errorf("path %s: node %s requires unknown node %s", p.ID, n.ID, pre)
			}
		}
	}
	for _, c := range p.Connections {
		if !nodes[c.From] {
			return fmt.Errorf("path %s: connection from unknown node %s", p.ID, c.From)
		}
		if !nodes[c.To] {
			return fmt.Errorf("path %s: connection to unknown node %s", p.ID, c.To)
		}
	}

	return p.checkAcyclic()
}

// checkAcyclic runs Kahn's algorithm over connections plus
// prerequisite edges; leftover nodes mean a cycle.
func (p *Path) checkAcyclic() error {
	indegree := make(map[string]int, len(p.Nodes))
	successors := make(map[string][]string)

	for _, n := range p.Nodes {
		indegree[n.ID] = 0
	}
	addEdge := func(from, to string) {
		successors[from] = append(successors[from], to)
		indegree[to]++
	}
	for _, c := range p.Connections {
		addEdge(c.From, c.To)
	}
	for _, n := range p.Nodes {
		for _, pre := range n.Prerequisites {
			addEdge(pre, n.ID)
		}
	}

	var queue []string
	for id, deg := range indegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range successors[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited != len(p.Nodes) {
		return fmt.Errorf("path %s contains a cycle", p.ID)
	}
	return nil
}

// Node returns the node with the given id, or nil.
func (p *Path) Node(id string) *Node {
	for i := range p.Nodes {
		if p.Nodes[i].ID == id {
			return &p.Nodes[i]
		}
	}
	return nil
}

// Unlocked reports whether every prerequisite of node id is in the
// completed set.
func (p *Path) Unlocked(id string, completed map[string]bool) bool {
	n := p.Node(id)
	if n == nil {
		return false
	}
	for _, pre := range n.Prerequisites {
		if !completed[pre] {
			return false
		}
	}
	return true
}
