package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sessionout "eductl/internal/modules/session/port/out"
)

// FileTokenStore keeps the session token as a plain string in a single
// file. A missing file means unauthenticated.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) sessionout.TokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Load(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileTokenStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
