package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore caches the session token between CLI invocations. The file
// is private to the user (0600, parent directory 0700).
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (s *TokenStore) Path() string { return s.path }

func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("token write: %w", err)
	}
	return os.Chmod(s.path, 0o600)
}

// Load returns ErrNoSession when nothing has been saved.
func (s *TokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("token read: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// Clear removes the cached token; a missing file is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
