// Package session persists the client's identity between runs: the bearer
// token and the user it belongs to, stored as a JSON file with an explicit
// load-at-start / clear-at-logout lifecycle.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dkarpovs/epitrello/internal/filex"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`

	path string
}

// New returns an empty session persisted at path. An empty path resolves to
// epitrello/session.json under the user config dir.
func New(path string) (*Session, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "epitrello", "session.json")
	}
	return &Session{path: path}, nil
}

// Load reads the persisted session if one exists. A missing file leaves the
// session empty and is not an error.
func (s *Session) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, s)
}

// Save persists the token and user to the session file.
func (s *Session) Save() error {
	if err := filex.EnsureParentDir(s.path); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear forgets the identity and removes the session file.
func (s *Session) Clear() error {
	s.Token = ""
	s.User = nil
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Session) LoggedIn() bool {
	return s.Token != "" && s.User != nil
}
