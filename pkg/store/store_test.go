package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return s
}

func testUser(uid, email string) *auth.User {
	now := time.Now().Truncate(time.Second)
	return &auth.User{
		UID:          uid,
		Email:        email,
		DisplayName:  "Test User",
		PasswordHash: []byte("hash"),
		Provider:     "local",
		Preferences:  auth.DefaultPreferences(),
		CreatedAt:    now,
		LastLoginAt:  now,
	}
}

func TestSaveAndLookupUser(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	u := testUser("uid-1", "a@example.com")
	if err := s.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	byEmail, err := s.UserByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if byEmail.UID != "uid-1" || byEmail.DisplayName != "Test User" {
		t.Errorf("unexpected user %+v", byEmail)
	}
	if byEmail.Preferences != auth.DefaultPreferences() {
		t.Errorf("preferences not round-tripped: %+v", byEmail.Preferences)
	}

	byUID, err := s.UserByUID(ctx, "uid-1")
	if err != nil {
		t.Fatalf("UserByUID: %v", err)
	}
	if byUID.Email != "a@example.com" {
		t.Errorf("unexpected email %q", byUID.Email)
	}
}

func TestUserNotFound(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.UserByEmail(ctx, "missing@example.com"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("UserByEmail error = %v, want ErrUserNotFound", err)
	}
	if _, err := s.UserByUID(ctx, "missing"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("UserByUID error = %v, want ErrUserNotFound", err)
	}
	if err := s.UpdateLastLogin(ctx, "missing", time.Now()); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("UpdateLastLogin error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdatePreferences(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveUser(ctx, testUser("uid-1", "a@example.com")); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	p := auth.Preferences{Theme: "light", Notifications: false, EmailUpdates: true}
	if err := s.UpdatePreferences(ctx, "uid-1", p); err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}

	u, err := s.UserByUID(ctx, "uid-1")
	if err != nil {
		t.Fatalf("UserByUID: %v", err)
	}
	if u.Preferences != p {
		t.Errorf("preferences = %+v, want %+v", u.Preferences, p)
	}
}

func TestBookmarks(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveUser(ctx, testUser("uid-1", "a@example.com")); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	for _, id := range []string{"repo-1", "video-9", "repo-1"} {
		if err := s.AddBookmark(ctx, "uid-1", id); err != nil {
			t.Fatalf("AddBookmark(%s): %v", id, err)
		}
	}

	marks, err := s.Bookmarks(ctx, "uid-1")
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("got %d bookmarks, want 2 (duplicates collapse)", len(marks))
	}

	ok, err := s.IsBookmarked(ctx, "uid-1", "repo-1")
	if err != nil || !ok {
		t.Errorf("IsBookmarked(repo-1) = %v, %v", ok, err)
	}

	if err := s.RemoveBookmark(ctx, "uid-1", "repo-1"); err != nil {
		t.Fatalf("RemoveBookmark: %v", err)
	}
	ok, _ = s.IsBookmarked(ctx, "uid-1", "repo-1")
	if ok {
		t.Error("bookmark still present after removal")
	}

	// Removing again is a no-op.
	if err := s.RemoveBookmark(ctx, "uid-1", "repo-1"); err != nil {
		t.Errorf("removing absent bookmark: %v", err)
	}
}

func TestSearchHistoryDedupAndCap(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveUser(ctx, testUser("uid-1", "a@example.com")); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	for _, q := range []string{"go", "rust", "go"} {
		if err := s.AppendSearch(ctx, "uid-1", q); err != nil {
			t.Fatalf("AppendSearch(%s): %v", q, err)
		}
	}

	history, err := s.RecentSearches(ctx, "uid-1")
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(history) != 2 || history[0] != "go" || history[1] != "rust" {
		t.Fatalf("history = %v, want [go rust]", history)
	}

	for i := 0; i < 15; i++ {
		if err := s.AppendSearch(ctx, "uid-1", fmt.Sprintf("query-%d", i)); err != nil {
			t.Fatalf("AppendSearch: %v", err)
		}
	}
	history, err = s.RecentSearches(ctx, "uid-1")
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(history) != MaxHistory {
		t.Errorf("history length = %d, want %d", len(history), MaxHistory)
	}
	if history[0] != "query-14" {
		t.Errorf("most recent first, got %q", history[0])
	}
}

func TestClearHistory(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveUser(ctx, testUser("uid-1", "a@example.com")); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	if err := s.AppendSearch(ctx, "uid-1", "go"); err != nil {
		t.Fatalf("AppendSearch: %v", err)
	}
	if err := s.ClearHistory(ctx, "uid-1"); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	history, err := s.RecentSearches(ctx, "uid-1")
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history not cleared: %v", history)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.SaveUser(context.Background(), testUser("uid-1", "a@example.com")); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	// Reopening must not rerun migrations or lose data.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer func() { _ = s2.Close() }()
	if _, err := s2.UserByUID(context.Background(), "uid-1"); err != nil {
		t.Errorf("user lost across reopen: %v", err)
	}
}

func TestRoadmapProgressToggle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	completed, err := s.ToggleRoadmapNode(ctx, "", "backend-go", "go-basics")
	if err != nil {
		t.Fatalf("ToggleRoadmapNode: %v", err)
	}
	if !completed {
		t.Fatal("first toggle should complete the node")
	}

	done, err := s.CompletedNodes(ctx, "", "backend-go")
	if err != nil {
		t.Fatalf("CompletedNodes: %v", err)
	}
	if !done["go-basics"] {
		t.Errorf("completed node missing from set: %v", done)
	}

	completed, err = s.ToggleRoadmapNode(ctx, "", "backend-go", "go-basics")
	if err != nil {
		t.Fatalf("ToggleRoadmapNode: %v", err)
	}
	if completed {
		t.Error("second toggle should reopen the node")
	}
	done, err = s.CompletedNodes(ctx, "", "backend-go")
	if err != nil {
		t.Fatalf("CompletedNodes: %v", err)
	}
	if len(done) != 0 {
		t.Errorf("reopened node still in set: %v", done)
	}
}

func TestRoadmapProgressIsPerUser(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.ToggleRoadmapNode(ctx, "uid-1", "backend-go", "go-basics"); err != nil {
		t.Fatalf("ToggleRoadmapNode: %v", err)
	}

	done, err := s.CompletedNodes(ctx, "", "backend-go")
	if err != nil {
		t.Fatalf("CompletedNodes: %v", err)
	}
	if len(done) != 0 {
		t.Errorf("anonymous user sees another user's progress: %v", done)
	}
}
