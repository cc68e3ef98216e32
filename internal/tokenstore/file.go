package tokenstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"launchpad/internal/observability"
)

// FileStore persists the token in a single file under the user's config
// directory. This is the default backend; it survives client restarts
// within the same profile.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		observability.TokenStoreErrors.WithLabelValues("save").Inc()
		return err
	}
	// 0600: the credential must not be readable by other users.
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		observability.TokenStoreErrors.WithLabelValues("save").Inc()
		return err
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		observability.TokenStoreErrors.WithLabelValues("load").Inc()
		return "", false, err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		observability.TokenStoreErrors.WithLabelValues("clear").Inc()
		return err
	}
	return nil
}
