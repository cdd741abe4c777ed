package adapter

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// SessionFile keeps the session token between client runs.
type SessionFile struct {
	path string
}

func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// Load returns the stored token, or "" when no session was saved.
func (s *SessionFile) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Save writes token readable by the current user only.
func (s *SessionFile) Save(token string) error {
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. A missing file is not an error.
func (s *SessionFile) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
