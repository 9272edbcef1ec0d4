package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fiscaldata/mts-tracker/internal/common"
)

// FSStore keeps each artifact as <dir>/<key>.json. Writes go through a temp
// file and rename so a crashed write never leaves a half-written artifact.
type FSStore struct {
	dir    string
	logger *slog.Logger
}

func NewFSStore(dir string, logger *slog.Logger) (*FSStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir %q: %w", dir, err)
	}
	return &FSStore{dir: dir, logger: logger}, nil
}

func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("artifact %q", key), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("reading artifact %q: %w", key, err)
	}
	return data, nil
}

func (s *FSStore) Put(_ context.Context, key string, data []byte) error {
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing artifact %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing artifact %q: %w", key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("publishing artifact %q: %w", key, err)
	}
	s.logger.Debug("store.put", "key", key, "bytes", len(data), "path", target)
	return nil
}

func (s *FSStore) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FSStore) Close() error { return nil }

func (s *FSStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
