// Package store persists users, bookmarks, and search history in a
// single sqlite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
)

var logger = log.ForComponent("store")

// MaxHistory caps per-user persisted search history.
const MaxHistory = 10

// Store is the sqlite-backed persistence layer. It implements
// auth.UserStore.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = memory",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrations run in order; user_version tracks the last applied one.
var migrations = []string{
	`CREATE TABLE users (
		uid           TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		display_name  TEXT NOT NULL DEFAULT '',
		password_hash BLOB,
		provider      TEXT NOT NULL DEFAULT 'local',
		theme         TEXT NOT NULL DEFAULT 'system',
		notifications INTEGER NOT NULL DEFAULT 1,
		email_updates INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		last_login_at TEXT NOT NULL
	)`,
	`CREATE TABLE bookmarks (
		uid         TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
		resource_id TEXT NOT NULL,
		added_at    TEXT NOT NULL,
		PRIMARY KEY (uid, resource_id)
	)`,
	`CREATE TABLE search_history (
		uid         TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
		query       TEXT NOT NULL,
		searched_at TEXT NOT NULL,
		PRIMARY KEY (uid, query)
	)`,
	// uid is '' for the anonymous local user, so no users reference.
	`CREATE TABLE roadmap_progress (
		uid          TEXT NOT NULL DEFAULT '',
		path_id      TEXT NOT NULL,
		node_id      TEXT NOT NULL,
		completed_at TEXT NOT NULL,
		PRIMARY KEY (uid, path_id, node_id)
	)`,
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("bumping schema version: %w", err)
		}
		logger.Debugf("applied migration %d", i+1)
	}
	return nil
}

// SaveUser inserts or replaces a user row.
func (s *Store) SaveUser(ctx context.Context, u *auth.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users
			(uid, email, display_name, password_hash, provider, theme, notifications, email_updates, created_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.UID, u.Email, u.DisplayName, u.PasswordHash, u.Provider,
		u.Preferences.Theme, boolInt(u.Preferences.Notifications), boolInt(u.Preferences.EmailUpdates),
		u.CreatedAt.Format(time.RFC3339), u.LastLoginAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving user %s: %w", u.UID, err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+" WHERE email = ?", email))
}

func (s *Store) UserByUID(ctx context.Context, uid string) (*auth.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+" WHERE uid = ?", uid))
}

const userSelect = `
	SELECT uid, email, display_name, password_hash, provider, theme, notifications, email_updates, created_at, last_login_at
	FROM users`

func (s *Store) scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User
	var notifications, emailUpdates int
	var createdAt, lastLogin string
	err := row.Scan(&u.UID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Provider,
		&u.Preferences.Theme, &notifications, &emailUpdates, &createdAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Preferences.Notifications = notifications != 0
	u.Preferences.EmailUpdates = emailUpdates != 0
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.LastLoginAt, _ = time.Parse(time.RFC3339, lastLogin)
	return &u, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, uid string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET last_login_at = ? WHERE uid = ?",
		at.Format(time.RFC3339), uid)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return requireRow(res)
}

func (s *Store) UpdatePreferences(ctx context.Context, uid string, p auth.Preferences) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET theme = ?, notifications = ?, email_updates = ? WHERE uid = ?`,
		p.Theme, boolInt(p.Notifications), boolInt(p.EmailUpdates), uid)
	if err != nil {
		return fmt.Errorf("updating preferences: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
