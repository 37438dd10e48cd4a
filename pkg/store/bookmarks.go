package store

import (
	"context"
	"fmt"
	"time"
)

// Bookmark is a saved resource reference.
type Bookmark struct {
	ResourceID string    `json:"resource_id"`
	AddedAt    time.Time `json:"added_at"`
}

// AddBookmark saves a resource for the user. Adding an existing
// bookmark refreshes its timestamp.
func (s *Store) AddBookmark(ctx context.Context, uid, resourceID string) error {
	if resourceID == "" {
		return fmt.Errorf("empty resource id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO bookmarks (uid, resource_id, added_at) VALUES (?, ?, ?)`,
		uid, resourceID, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("adding bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark deletes a saved resource. Removing a bookmark that
// does not exist is not an error.
func (s *Store) RemoveBookmark(ctx context.Context, uid, resourceID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM bookmarks WHERE uid = ? AND resource_id = ?", uid, resourceID)
	if err != nil {
		return fmt.Errorf("removing bookmark: %w", err)
	}
	return nil
}

// Bookmarks lists the user's saved resources, newest first.
func (s *Store) Bookmarks(ctx context.Context, uid string) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT resource_id, added_at FROM bookmarks
		WHERE uid = ? ORDER BY added_at DESC, resource_id`, uid)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		var addedAt string
		if err := rows.Scan(&b.ResourceID, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		b.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
		out = append(out, b)
	}
	return out, rows.Err()
}

// IsBookmarked reports whether the user saved the resource.
func (s *Store) IsBookmarked(ctx context.Context, uid, resourceID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookmarks WHERE uid = ? AND resource_id = ?",
		uid, resourceID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking bookmark: %w", err)
	}
	return n > 0, nil
}
