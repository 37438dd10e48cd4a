package store

import (
	"context"
	"fmt"
	"time"
)

// AppendSearch records a query in the user's history. Repeating a
// query moves it to the front; only the MaxHistory most recent
// queries are kept.
func (s *Store) AppendSearch(ctx context.Context, uid, query string) error {
	if query == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO search_history (uid, query, searched_at) VALUES (?, ?, ?)`,
		uid, query, time.Now().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("recording search: %w", err)
	}

	// Trim everything past the newest MaxHistory entries.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM search_history WHERE uid = ? AND query NOT IN (
			SELECT query FROM search_history WHERE uid = ?
			ORDER BY searched_at DESC LIMIT ?
		)`, uid, uid, MaxHistory); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	committed = true
	return nil
}

// RecentSearches returns the user's history, most recent first.
func (s *Store) RecentSearches(ctx context.Context, uid string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query FROM search_history
		WHERE uid = ? ORDER BY searched_at DESC LIMIT ?`, uid, MaxHistory)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ClearHistory deletes the user's search history.
func (s *Store) ClearHistory(ctx context.Context, uid string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM search_history WHERE uid = ?", uid); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
