// Package auth stores the bearer token session for the cartas backend.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cartastcg/cartas-tray/internal/config"
	"github.com/pelletier/go-toml/v2"
)

// ErrNotLoggedIn indicates that no session token is stored.
var ErrNotLoggedIn = errors.New("not logged in")

const sessionFile = "session.toml"

// Session holds the persisted login state.
type Session struct {
	Token  string `toml:"token"`
	UserID string `toml:"user_id"`
}

// Store reads and writes the session file under the config directory.
type Store struct {
	dir string
}

// NewStore creates a session store rooted at the configured config_dir.
func NewStore() *Store {
	return &Store{dir: config.Get("config_dir", "")}
}

// NewStoreAt creates a session store rooted at an explicit directory.
// Intended for tests.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}

// Save persists the session. The file is written with owner-only permissions.
func (s *Store) Save(session Session) error {
	if strings.TrimSpace(session.Token) == "" {
		return fmt.Errorf("auth: token cannot be empty")
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("auth: create config dir: %w", err)
	}
	data, err := toml.Marshal(session)
	if err != nil {
		return fmt.Errorf("auth: marshal session: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("auth: write session: %w", err)
	}
	return nil
}

// Load returns the stored session, or ErrNotLoggedIn when none exists.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, fmt.Errorf("auth: read session: %w", err)
	}
	var session Session
	if err := toml.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("auth: parse session: %w", err)
	}
	if strings.TrimSpace(session.Token) == "" {
		return Session{}, ErrNotLoggedIn
	}
	return session, nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("auth: clear session: %w", err)
	}
	return nil
}
