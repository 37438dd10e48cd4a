package store

import (
	"context"
	"fmt"
	"time"
)

// ToggleRoadmapNode flips a node's completion for the user and
// returns the new state. An empty uid tracks the anonymous local user.
func (s *Store) ToggleRoadmapNode(ctx context.Context, uid, pathID, nodeID string) (bool, error) {
	if pathID == "" || nodeID == "" {
		return false, fmt.Errorf("empty path or node id")
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM roadmap_progress WHERE uid = ? AND path_id = ? AND node_id = ?`,
		uid, pathID, nodeID)
	if err != nil {
		return false, fmt.Errorf("toggling node: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO roadmap_progress (uid, path_id, node_id, completed_at) VALUES (?, ?, ?, ?)`,
		uid, pathID, nodeID, time.Now().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("toggling node: %w", err)
	}
	return true, nil
}

// CompletedNodes returns the set of node ids the user completed on a
// path.
func (s *Store) CompletedNodes(ctx context.Context, uid, pathID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT node_id FROM roadmap_progress WHERE uid = ? AND path_id = ?`, uid, pathID)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}
	defer func() { _ = rows.Close() }()

	done := make(map[string]bool)
	for rows.Next() {
		var nodeID string
		if err := rows.Scan(&nodeID); err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		done[nodeID] = true
	}
	return done, rows.Err()
}
