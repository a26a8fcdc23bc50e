// ABOUTME: Persisted session storage for the skillsync CLI
// ABOUTME: Stores the bearer token and subject in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store reads and writes the session file. The file is plain JSON holding
// the token and derived subject; mode 0600 since the token is a credential.
type Store struct {
	configDir string
}

// NewStore creates a store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// sessionFile returns the path to the session JSON
func (s *Store) sessionFile() string {
	return filepath.Join(s.configDir, "session.json")
}

// Load reads the persisted session from disk. A missing or unreadable file
// yields an empty session rather than an error; corrupt JSON starts fresh.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.sessionFile())
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Invalid JSON, start fresh
		return Session{}, nil
	}
	return sess, nil
}

// Save writes the session to disk, creating the config directory if needed.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(s.configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.sessionFile(), data, 0600)
}

// Clear removes the session file. A file that is already gone is fine.
func (s *Store) Clear() error {
	err := os.Remove(s.sessionFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
