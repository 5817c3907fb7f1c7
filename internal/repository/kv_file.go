package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// fileKeyValueRepository stores each key as <dir>/<key>.json.
type fileKeyValueRepository struct {
	mu  sync.Mutex
	dir string
}

func NewFileKeyValueRepository(dir string) (KeyValueRepository, error) {
	err := os.MkdirAll(dir, 0o700)
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileKeyValueRepository{dir: dir}, nil
}

func (r *fileKeyValueRepository) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *fileKeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Set writes to a temp file and renames it over the target.
func (r *fileKeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmpPath := path + ".tmp"
	err = os.WriteFile(tmpPath, value, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	err = os.Rename(tmpPath, path)
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
