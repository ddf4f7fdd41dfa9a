package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileStore keeps the local session token in a JSON file.
type FileStore struct {
	path string
}

type sessionFile struct {
	Token string `json:"token"`
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the session file location.
func (s *FileStore) Path() string { return s.path }

// Load returns the stored token, or "" when there is no session.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("corrupt session file %s: %w", s.path, err)
	}
	return f.Token, nil
}

// Save replaces the session file atomically, readable by the owner only.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	data, err := json.Marshal(sessionFile{Token: token})
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
