package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/arens/quizdeck/internal/models"
)

// Store persists the session token and the cached user record across
// runs, in a small JSON file.
type Store struct {
	mu    sync.Mutex
	path  string
	state storedState
}

type storedState struct {
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// NewStore opens the state file at path, creating parent directories as
// needed. A missing file means a logged-out state.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		// A corrupt state file is treated as logged out rather than fatal.
		s.state = storedState{}
	}
	return s, nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// SetSession stores a token and its user and persists them.
func (s *Store) SetSession(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = storedState{Token: token, User: user}
	return s.flushLocked()
}

// SetUser refreshes the cached user record without touching the token.
func (s *Store) SetUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	return s.flushLocked()
}

// Clear wipes the stored session.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = storedState{}
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
