package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps audio files on disk under dir; the HTTP server exposes the
// directory at /static/audio. Meant for development setups without a bucket.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/static/audio/" + name, nil
}
